package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/auth"
	"github.com/ovenledger/bakery-api/internal/domain"
	"github.com/ovenledger/bakery-api/internal/service"
	"go.uber.org/zap"
)

// EnquiryHandler handles HTTP requests for enquiries
type EnquiryHandler struct {
	enquiryService *service.EnquiryService
	logger         *zap.Logger
}

func NewEnquiryHandler(enquiryService *service.EnquiryService, logger *zap.Logger) *EnquiryHandler {
	return &EnquiryHandler{
		enquiryService: enquiryService,
		logger:         logger,
	}
}

// ListEnquiries godoc
// @Summary List enquiries
// @Tags Enquiries
// @Produce json
// @Param status query string false "Filter by status" Enums(new, responded, converted, closed)
// @Success 200 {array} domain.EnquiryDTO
// @Security BearerAuth
// @Router /enquiries [get]
func (h *EnquiryHandler) ListEnquiries(w http.ResponseWriter, r *http.Request) {
	var status *domain.EnquiryStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		st := domain.EnquiryStatus(raw)
		if !st.IsValid() {
			respondWithError(w, http.StatusBadRequest, "invalid filter: status")
			return
		}
		status = &st
	}

	enquiries, err := h.enquiryService.List(r.Context(), auth.OwnerID(r.Context()), status)
	if err != nil {
		h.logger.Error("failed to list enquiries", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, enquiries)
}

// GetEnquiry godoc
// @Summary Get an enquiry by ID
// @Tags Enquiries
// @Produce json
// @Param id path string true "Enquiry ID"
// @Success 200 {object} domain.EnquiryDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /enquiries/{id} [get]
func (h *EnquiryHandler) GetEnquiry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid enquiry ID")
		return
	}

	enquiry, err := h.enquiryService.GetByID(r.Context(), auth.OwnerID(r.Context()), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, enquiry)
}

// CreateEnquiry godoc
// @Summary Create an enquiry
// @Tags Enquiries
// @Accept json
// @Produce json
// @Param enquiry body domain.CreateEnquiryRequest true "Enquiry"
// @Success 201 {object} domain.EnquiryDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /enquiries [post]
func (h *EnquiryHandler) CreateEnquiry(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateEnquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	enquiry, err := h.enquiryService.Create(r.Context(), auth.OwnerID(r.Context()), &req)
	if err != nil {
		h.logger.Error("failed to create enquiry", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, enquiry)
}

// UpdateEnquiryStatus godoc
// @Summary Update an enquiry's status
// @Tags Enquiries
// @Accept json
// @Produce json
// @Param id path string true "Enquiry ID"
// @Param status body domain.UpdateEnquiryStatusRequest true "New status"
// @Success 200 {object} domain.EnquiryDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /enquiries/{id}/status [put]
func (h *EnquiryHandler) UpdateEnquiryStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid enquiry ID")
		return
	}

	var req domain.UpdateEnquiryStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	enquiry, err := h.enquiryService.UpdateStatus(r.Context(), auth.OwnerID(r.Context()), id, req.Status)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, enquiry)
}

// DeleteEnquiry godoc
// @Summary Delete an enquiry
// @Tags Enquiries
// @Param id path string true "Enquiry ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /enquiries/{id} [delete]
func (h *EnquiryHandler) DeleteEnquiry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid enquiry ID")
		return
	}

	if err := h.enquiryService.Delete(r.Context(), auth.OwnerID(r.Context()), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
