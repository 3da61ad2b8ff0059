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

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	orderService *service.OrderService
	logger       *zap.Logger
}

func NewOrderHandler(orderService *service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

func parseOrderFilters(r *http.Request) (*repository.OrderFilters, error) {
	filters := &repository.OrderFilters{}

	if status := r.URL.Query().Get("status"); status != "" {
		st := domain.OrderStatus(status)
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

type filterError string

func (e filterError) Error() string { return string(e) }

func errInvalidFilter(name string) error {
	return filterError("invalid filter: " + name)
}

// ListOrders godoc
// @Summary List orders
// @Tags Orders
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param status query string false "Filter by status" Enums(quote, confirmed, paid, ready, delivered, cancelled)
// @Param contactId query string false "Filter by contact"
// @Param eventFrom query string false "Event date lower bound (YYYY-MM-DD)"
// @Param eventTo query string false "Event date upper bound (YYYY-MM-DD)"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Router /orders [get]
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	filters, err := parseOrderFilters(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, pageSize := parsePagination(r)
	orders, total, err := h.orderService.List(r.Context(), auth.OwnerID(r.Context()), page, pageSize, filters)
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, paginated(orders, total, page, pageSize))
}

// GetOrder godoc
// @Summary Get an order by ID
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.OrderDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(r.Context(), auth.OwnerID(r.Context()), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// CreateOrder godoc
// @Summary Create an order
// @Description The order number is claimed from the owner's sequence.
// @Tags Orders
// @Accept json
// @Produce json
// @Param order body domain.CreateOrderRequest true "Order"
// @Success 201 {object} domain.OrderDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	order, err := h.orderService.Create(r.Context(), auth.OwnerID(r.Context()), &req)
	if err != nil {
		h.logger.Error("failed to create order", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

// UpdateOrder godoc
// @Summary Update an order
// @Description Line items are replaced as a unit with the submitted set.
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param order body domain.UpdateOrderRequest true "Order"
// @Success 200 {object} domain.OrderDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /orders/{id} [put]
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req domain.UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	order, err := h.orderService.Update(r.Context(), auth.OwnerID(r.Context()), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// DeleteOrder godoc
// @Summary Delete an order
// @Tags Orders
// @Param id path string true "Order ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	if err := h.orderService.Delete(r.Context(), auth.OwnerID(r.Context()), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
