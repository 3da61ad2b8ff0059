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

// IncomeHandler handles HTTP requests for income entries
type IncomeHandler struct {
	incomeService *service.IncomeService
	logger        *zap.Logger
}

func NewIncomeHandler(incomeService *service.IncomeService, logger *zap.Logger) *IncomeHandler {
	return &IncomeHandler{
		incomeService: incomeService,
		logger:        logger,
	}
}

// ListIncome godoc
// @Summary List income entries
// @Tags Income
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Router /income [get]
func (h *IncomeHandler) ListIncome(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	entries, total, err := h.incomeService.List(r.Context(), auth.OwnerID(r.Context()), page, pageSize)
	if err != nil {
		h.logger.Error("failed to list income", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, paginated(entries, total, page, pageSize))
}

// GetIncome godoc
// @Summary Get an income entry by ID
// @Tags Income
// @Produce json
// @Param id path string true "Income ID"
// @Success 200 {object} domain.IncomeDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /income/{id} [get]
func (h *IncomeHandler) GetIncome(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid income ID")
		return
	}

	income, err := h.incomeService.GetByID(r.Context(), auth.OwnerID(r.Context()), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, income)
}

// CreateIncome godoc
// @Summary Create an income entry
// @Tags Income
// @Accept json
// @Produce json
// @Param income body domain.CreateIncomeRequest true "Income"
// @Success 201 {object} domain.IncomeDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /income [post]
func (h *IncomeHandler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	income, err := h.incomeService.Create(r.Context(), auth.OwnerID(r.Context()), &req)
	if err != nil {
		h.logger.Error("failed to create income", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, income)
}

// UpdateIncome godoc
// @Summary Update an income entry
// @Tags Income
// @Accept json
// @Produce json
// @Param id path string true "Income ID"
// @Param income body domain.UpdateIncomeRequest true "Income"
// @Success 200 {object} domain.IncomeDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /income/{id} [put]
func (h *IncomeHandler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid income ID")
		return
	}

	var req domain.UpdateIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	income, err := h.incomeService.Update(r.Context(), auth.OwnerID(r.Context()), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, income)
}

// DeleteIncome godoc
// @Summary Delete an income entry
// @Tags Income
// @Param id path string true "Income ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /income/{id} [delete]
func (h *IncomeHandler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid income ID")
		return
	}

	if err := h.incomeService.Delete(r.Context(), auth.OwnerID(r.Context()), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
