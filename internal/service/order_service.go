package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/domain"
	"github.com/ovenledger/bakery-api/internal/mapper"
	"github.com/ovenledger/bakery-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderService struct {
	orderRepo    *repository.OrderRepository
	contactRepo  *repository.ContactRepository
	sequenceRepo *repository.SequenceRepository
	logger       *zap.Logger
}

func NewOrderService(
	orderRepo *repository.OrderRepository,
	contactRepo *repository.ContactRepository,
	sequenceRepo *repository.SequenceRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		contactRepo:  contactRepo,
		sequenceRepo: sequenceRepo,
		logger:       logger,
	}
}

func buildOrderItems(inputs []domain.OrderItemInput) []domain.OrderItem {
	items := make([]domain.OrderItem, len(inputs))
	for i, in := range inputs {
		items[i] = domain.OrderItem{
			Name:        in.Name,
			Description: in.Description,
			Quantity:    quantity(in.Quantity),
			UnitPrice:   money(in.UnitPrice),
			LinePrice:   money(in.LinePrice),
		}
	}
	return items
}

func (s *OrderService) Create(ctx context.Context, ownerID uuid.UUID, req *domain.CreateOrderRequest) (*domain.OrderDTO, error) {
	if req.ContactID != nil {
		if _, err := s.contactRepo.GetByID(ctx, ownerID, *req.ContactID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: contact not found", ErrInvalidInput)
			}
			return nil, fmt.Errorf("failed to check contact: %w", err)
		}
	}

	number, err := s.sequenceRepo.Next(ctx, ownerID, repository.SequenceKindOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to claim order number: %w", err)
	}

	order := &domain.Order{
		OwnerID:      ownerID,
		ContactID:    req.ContactID,
		OrderNumber:  number,
		EventType:    req.EventType,
		EventDate:    parseDate(req.EventDate),
		Status:       req.Status,
		DeliveryType: req.DeliveryType,
		Discount:     money(req.Discount),
		SetupFee:     money(req.SetupFee),
		TaxRate:      rate(req.TaxRate),
		Total:        money(req.Total),
		Notes:        req.Notes,
		Items:        buildOrderItems(req.Items),
	}
	if order.EventType == "" {
		order.EventType = domain.EventTypeOther
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusQuote
	}
	if order.DeliveryType == "" {
		order.DeliveryType = domain.DeliveryTypePickup
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.Int("order_number", order.OrderNumber))

	return s.GetByID(ctx, ownerID, order.ID)
}

func (s *OrderService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.OrderDTO, error) {
	order, err := s.orderRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	dto := mapper.ToOrderDTO(order)
	return &dto, nil
}

func (s *OrderService) List(ctx context.Context, ownerID uuid.UUID, page, pageSize int, filters *repository.OrderFilters) ([]domain.OrderDTO, int64, error) {
	orders, total, err := s.orderRepo.List(ctx, ownerID, page, pageSize, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	dtos := make([]domain.OrderDTO, len(orders))
	for i, order := range orders {
		dtos[i] = mapper.ToOrderDTO(&order)
	}

	return dtos, total, nil
}

func (s *OrderService) Update(ctx context.Context, ownerID, id uuid.UUID, req *domain.UpdateOrderRequest) (*domain.OrderDTO, error) {
	order, err := s.orderRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if req.ContactID != nil {
		if _, err := s.contactRepo.GetByID(ctx, ownerID, *req.ContactID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: contact not found", ErrInvalidInput)
			}
			return nil, fmt.Errorf("failed to check contact: %w", err)
		}
	}

	order.ContactID = req.ContactID
	if req.EventType != "" {
		order.EventType = req.EventType
	}
	order.EventDate = parseDate(req.EventDate)
	if req.Status != "" {
		order.Status = req.Status
	}
	if req.DeliveryType != "" {
		order.DeliveryType = req.DeliveryType
	}
	order.Discount = money(req.Discount)
	order.SetupFee = money(req.SetupFee)
	order.TaxRate = rate(req.TaxRate)
	order.Total = money(req.Total)
	order.Notes = req.Notes

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	// Line items are replaced as a unit on every edit.
	if err := s.orderRepo.ReplaceItems(ctx, order.ID, buildOrderItems(req.Items)); err != nil {
		return nil, fmt.Errorf("failed to replace order items: %w", err)
	}

	return s.GetByID(ctx, ownerID, id)
}

func (s *OrderService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.orderRepo.GetByID(ctx, ownerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get order: %w", err)
	}

	if err := s.orderRepo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	return nil
}
