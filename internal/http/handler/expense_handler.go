package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/auth"
	"github.com/ovenledger/bakery-api/internal/domain"
	"github.com/ovenledger/bakery-api/internal/repository"
	"github.com/ovenledger/bakery-api/internal/service"
	"go.uber.org/zap"
)

// ExpenseHandler handles HTTP requests for expenses
type ExpenseHandler struct {
	expenseService *service.ExpenseService
	logger         *zap.Logger
}

func NewExpenseHandler(expenseService *service.ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		logger:         logger,
	}
}

// ListExpenses godoc
// @Summary List expenses
// @Tags Expenses
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param category query string false "Filter by category"
// @Param dateFrom query string false "Date lower bound (YYYY-MM-DD)"
// @Param dateTo query string false "Date upper bound (YYYY-MM-DD)"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Router /expenses [get]
func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	filters := &repository.ExpenseFilters{
		Category: r.URL.Query().Get("category"),
	}
	if from := r.URL.Query().Get("dateFrom"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid filter: dateFrom")
			return
		}
		filters.DateFrom = &t
	}
	if to := r.URL.Query().Get("dateTo"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid filter: dateTo")
			return
		}
		filters.DateTo = &t
	}

	page, pageSize := parsePagination(r)
	expenses, total, err := h.expenseService.List(r.Context(), auth.OwnerID(r.Context()), page, pageSize, filters)
	if err != nil {
		h.logger.Error("failed to list expenses", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, paginated(expenses, total, page, pageSize))
}

// GetExpense godoc
// @Summary Get an expense by ID
// @Tags Expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} domain.ExpenseDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid expense ID")
		return
	}

	expense, err := h.expenseService.GetByID(r.Context(), auth.OwnerID(r.Context()), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, expense)
}

// CreateExpense godoc
// @Summary Create an expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param expense body domain.CreateExpenseRequest true "Expense"
// @Success 201 {object} domain.ExpenseDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /expenses [post]
func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	expense, err := h.expenseService.Create(r.Context(), auth.OwnerID(r.Context()), &req)
	if err != nil {
		h.logger.Error("failed to create expense", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, expense)
}

// UpdateExpense godoc
// @Summary Update an expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param expense body domain.UpdateExpenseRequest true "Expense"
// @Success 200 {object} domain.ExpenseDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid expense ID")
		return
	}

	var req domain.UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	expense, err := h.expenseService.Update(r.Context(), auth.OwnerID(r.Context()), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, expense)
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags Expenses
// @Param id path string true "Expense ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid expense ID")
		return
	}

	if err := h.expenseService.Delete(r.Context(), auth.OwnerID(r.Context()), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
