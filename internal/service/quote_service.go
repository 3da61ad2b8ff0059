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

type QuoteService struct {
	quoteRepo    *repository.QuoteRepository
	orderRepo    *repository.OrderRepository
	contactRepo  *repository.ContactRepository
	sequenceRepo *repository.SequenceRepository
	logger       *zap.Logger
}

func NewQuoteService(
	quoteRepo *repository.QuoteRepository,
	orderRepo *repository.OrderRepository,
	contactRepo *repository.ContactRepository,
	sequenceRepo *repository.SequenceRepository,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		quoteRepo:    quoteRepo,
		orderRepo:    orderRepo,
		contactRepo:  contactRepo,
		sequenceRepo: sequenceRepo,
		logger:       logger,
	}
}

func buildQuoteItems(inputs []domain.OrderItemInput) []domain.QuoteItem {
	items := make([]domain.QuoteItem, len(inputs))
	for i, in := range inputs {
		items[i] = domain.QuoteItem{
			Name:        in.Name,
			Description: in.Description,
			Quantity:    quantity(in.Quantity),
			UnitPrice:   money(in.UnitPrice),
			LinePrice:   money(in.LinePrice),
		}
	}
	return items
}

func (s *QuoteService) Create(ctx context.Context, ownerID uuid.UUID, req *domain.CreateQuoteRequest) (*domain.QuoteDTO, error) {
	if req.ContactID != nil {
		if _, err := s.contactRepo.GetByID(ctx, ownerID, *req.ContactID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: contact not found", ErrInvalidInput)
			}
			return nil, fmt.Errorf("failed to check contact: %w", err)
		}
	}

	number, err := s.sequenceRepo.Next(ctx, ownerID, repository.SequenceKindQuote)
	if err != nil {
		return nil, fmt.Errorf("failed to claim quote number: %w", err)
	}

	quote := &domain.Quote{
		OwnerID:      ownerID,
		ContactID:    req.ContactID,
		QuoteNumber:  number,
		EventType:    req.EventType,
		EventDate:    parseDate(req.EventDate),
		Status:       req.Status,
		DeliveryType: req.DeliveryType,
		Discount:     money(req.Discount),
		SetupFee:     money(req.SetupFee),
		TaxRate:      rate(req.TaxRate),
		Total:        money(req.Total),
		Notes:        req.Notes,
		Items:        buildQuoteItems(req.Items),
	}
	if quote.EventType == "" {
		quote.EventType = domain.EventTypeOther
	}
	if quote.Status == "" {
		quote.Status = domain.QuoteStatusDraft
	}
	if quote.DeliveryType == "" {
		quote.DeliveryType = domain.DeliveryTypePickup
	}

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}

	s.logger.Info("quote created",
		zap.String("quote_id", quote.ID.String()),
		zap.Int("quote_number", quote.QuoteNumber))

	return s.GetByID(ctx, ownerID, quote.ID)
}

func (s *QuoteService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.QuoteDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

func (s *QuoteService) List(ctx context.Context, ownerID uuid.UUID, page, pageSize int, filters *repository.QuoteFilters) ([]domain.QuoteDTO, int64, error) {
	quotes, total, err := s.quoteRepo.List(ctx, ownerID, page, pageSize, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list quotes: %w", err)
	}

	dtos := make([]domain.QuoteDTO, len(quotes))
	for i, quote := range quotes {
		dtos[i] = mapper.ToQuoteDTO(&quote)
	}

	return dtos, total, nil
}

func (s *QuoteService) Update(ctx context.Context, ownerID, id uuid.UUID, req *domain.UpdateQuoteRequest) (*domain.QuoteDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	if req.ContactID != nil {
		if _, err := s.contactRepo.GetByID(ctx, ownerID, *req.ContactID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: contact not found", ErrInvalidInput)
			}
			return nil, fmt.Errorf("failed to check contact: %w", err)
		}
	}

	quote.ContactID = req.ContactID
	if req.EventType != "" {
		quote.EventType = req.EventType
	}
	quote.EventDate = parseDate(req.EventDate)
	if req.Status != "" {
		quote.Status = req.Status
	}
	if req.DeliveryType != "" {
		quote.DeliveryType = req.DeliveryType
	}
	quote.Discount = money(req.Discount)
	quote.SetupFee = money(req.SetupFee)
	quote.TaxRate = rate(req.TaxRate)
	quote.Total = money(req.Total)
	quote.Notes = req.Notes

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to update quote: %w", err)
	}

	if err := s.quoteRepo.ReplaceItems(ctx, quote.ID, buildQuoteItems(req.Items)); err != nil {
		return nil, fmt.Errorf("failed to replace quote items: %w", err)
	}

	return s.GetByID(ctx, ownerID, id)
}

// ConvertToOrder creates an order from an accepted quote. The quote keeps
// its own number; the order claims the next order number.
func (s *QuoteService) ConvertToOrder(ctx context.Context, ownerID, id uuid.UUID) (*domain.OrderDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	number, err := s.sequenceRepo.Next(ctx, ownerID, repository.SequenceKindOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to claim order number: %w", err)
	}

	order := &domain.Order{
		OwnerID:      ownerID,
		ContactID:    quote.ContactID,
		OrderNumber:  number,
		EventType:    quote.EventType,
		EventDate:    quote.EventDate,
		Status:       domain.OrderStatusConfirmed,
		DeliveryType: quote.DeliveryType,
		Discount:     quote.Discount,
		SetupFee:     quote.SetupFee,
		TaxRate:      quote.TaxRate,
		Total:        quote.Total,
		Notes:        quote.Notes,
	}
	order.Items = make([]domain.OrderItem, len(quote.Items))
	for i, item := range quote.Items {
		order.Items[i] = domain.OrderItem{
			Name:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LinePrice:   item.LinePrice,
		}
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order from quote: %w", err)
	}

	quote.Status = domain.QuoteStatusAccepted
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to mark quote accepted: %w", err)
	}

	s.logger.Info("quote converted to order",
		zap.String("quote_id", quote.ID.String()),
		zap.String("order_id", order.ID.String()),
		zap.Int("order_number", order.OrderNumber))

	created, err := s.orderRepo.GetByID(ctx, ownerID, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created order: %w", err)
	}
	dto := mapper.ToOrderDTO(created)
	return &dto, nil
}

func (s *QuoteService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.quoteRepo.GetByID(ctx, ownerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get quote: %w", err)
	}

	if err := s.quoteRepo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}

	return nil
}
