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

// QuoteHandler handles HTTP requests for quotes
type QuoteHandler struct {
	quoteService *service.QuoteService
	logger       *zap.Logger
}

func NewQuoteHandler(quoteService *service.QuoteService, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		logger:       logger,
	}
}

func parseQuoteFilters(r *http.Request) (*repository.QuoteFilters, error) {
	filters := &repository.QuoteFilters{}

	if status := r.URL.Query().Get("status"); status != "" {
		st := domain.QuoteStatus(status)
		if !st.IsValid() {
			return nil, errInvalidFilter("status")
		}
		filters.Status = &st
	}
	if contactID := r.URL.Query().Get("contactId"); contactID != "" {
		id, err := uuid.Parse(contactID)
		if err != nil {
			return nil, errInvalidFilter("contactId")
		}
		filters.ContactID = &id
	}
	if from := r.URL.Query().Get("eventFrom"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return nil, errInvalidFilter("eventFrom")
		}
		filters.EventFrom = &t
	}
	if to := r.URL.Query().Get("eventTo"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return nil, errInvalidFilter("eventTo")
		}
		filters.EventTo = &t
	}

	return filters, nil
}

// ListQuotes godoc
// @Summary List quotes
// @Tags Quotes
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param status query string false "Filter by status" Enums(draft, sent, accepted, declined, expired, cancelled)
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Router /quotes [get]
func (h *QuoteHandler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	filters, err := parseQuoteFilters(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, pageSize := parsePagination(r)
	quotes, total, err := h.quoteService.List(r.Context(), auth.OwnerID(r.Context()), page, pageSize, filters)
	if err != nil {
		h.logger.Error("failed to list quotes", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, paginated(quotes, total, page, pageSize))
}

// GetQuote godoc
// @Summary Get a quote by ID
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} domain.QuoteDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.GetByID(r.Context(), auth.OwnerID(r.Context()), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// CreateQuote godoc
// @Summary Create a quote
// @Tags Quotes
// @Accept json
// @Produce json
// @Param quote body domain.CreateQuoteRequest true "Quote"
// @Success 201 {object} domain.QuoteDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes [post]
func (h *QuoteHandler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	quote, err := h.quoteService.Create(r.Context(), auth.OwnerID(r.Context()), &req)
	if err != nil {
		h.logger.Error("failed to create quote", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, quote)
}

// UpdateQuote godoc
// @Summary Update a quote
// @Tags Quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param quote body domain.UpdateQuoteRequest true "Quote"
// @Success 200 {object} domain.QuoteDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/{id} [put]
func (h *QuoteHandler) UpdateQuote(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	var req domain.UpdateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	quote, err := h.quoteService.Update(r.Context(), auth.OwnerID(r.Context()), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// ConvertQuote godoc
// @Summary Convert a quote into an order
// @Description Creates an order from the quote and marks the quote accepted.
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 201 {object} domain.OrderDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/{id}/convert [post]
func (h *QuoteHandler) ConvertQuote(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	order, err := h.quoteService.ConvertToOrder(r.Context(), auth.OwnerID(r.Context()), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

// DeleteQuote godoc
// @Summary Delete a quote
// @Tags Quotes
// @Param id path string true "Quote ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/{id} [delete]
func (h *QuoteHandler) DeleteQuote(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	if err := h.quoteService.Delete(r.Context(), auth.OwnerID(r.Context()), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
