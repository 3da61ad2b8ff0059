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

// ContactHandler handles HTTP requests for contacts
type ContactHandler struct {
	contactService *service.ContactService
	logger         *zap.Logger
}

func NewContactHandler(contactService *service.ContactService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// ListContacts godoc
// @Summary List contacts
// @Tags Contacts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Search by name, business or email"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Router /contacts [get]
func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerID(r.Context())

	if search := r.URL.Query().Get("search"); search != "" {
		contacts, err := h.contactService.Search(r.Context(), ownerID, search, 50)
		if err != nil {
			h.logger.Error("failed to search contacts", zap.Error(err))
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, paginated(contacts, int64(len(contacts)), 1, len(contacts)+1))
		return
	}

	page, pageSize := parsePagination(r)
	contacts, total, err := h.contactService.List(r.Context(), ownerID, page, pageSize)
	if err != nil {
		h.logger.Error("failed to list contacts", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, paginated(contacts, total, page, pageSize))
}

// GetContact godoc
// @Summary Get a contact by ID
// @Tags Contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} domain.ContactDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /contacts/{id} [get]
func (h *ContactHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	contact, err := h.contactService.GetByID(r.Context(), auth.OwnerID(r.Context()), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, contact)
}

// CreateContact godoc
// @Summary Create a contact
// @Tags Contacts
// @Accept json
// @Produce json
// @Param contact body domain.CreateContactRequest true "Contact"
// @Success 201 {object} domain.ContactDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /contacts [post]
func (h *ContactHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	contact, err := h.contactService.Create(r.Context(), auth.OwnerID(r.Context()), &req)
	if err != nil {
		h.logger.Error("failed to create contact", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, contact)
}

// UpdateContact godoc
// @Summary Update a contact
// @Tags Contacts
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param contact body domain.UpdateContactRequest true "Contact"
// @Success 200 {object} domain.ContactDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /contacts/{id} [put]
func (h *ContactHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	var req domain.UpdateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	contact, err := h.contactService.Update(r.Context(), auth.OwnerID(r.Context()), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, contact)
}

// DeleteContact godoc
// @Summary Delete a contact
// @Tags Contacts
// @Param id path string true "Contact ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /contacts/{id} [delete]
func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	if err := h.contactService.Delete(r.Context(), auth.OwnerID(r.Context()), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
