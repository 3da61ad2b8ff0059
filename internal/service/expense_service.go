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

type ExpenseService struct {
	expenseRepo *repository.ExpenseRepository
	logger      *zap.Logger
}

func NewExpenseService(expenseRepo *repository.ExpenseRepository, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		logger:      logger,
	}
}

func (s *ExpenseService) Create(ctx context.Context, ownerID uuid.UUID, req *domain.CreateExpenseRequest) (*domain.ExpenseDTO, error) {
	expense := &domain.Expense{
		OwnerID:       ownerID,
		Date:          parseDate(req.Date),
		Category:      req.Category,
		Amount:        money(req.Amount),
		Description:   req.Description,
		Supplier:      req.Supplier,
		PaymentSource: req.PaymentSource,
		VATAmount:     money(req.VATAmount),
		TotalIncTax:   money(req.TotalIncTax),
		IsRecurring:   req.IsRecurring,
		TaxDeductible: req.TaxDeductible,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	dto := mapper.ToExpenseDTO(expense)
	return &dto, nil
}

func (s *ExpenseService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.ExpenseDTO, error) {
	expense, err := s.expenseRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	dto := mapper.ToExpenseDTO(expense)
	return &dto, nil
}

func (s *ExpenseService) List(ctx context.Context, ownerID uuid.UUID, page, pageSize int, filters *repository.ExpenseFilters) ([]domain.ExpenseDTO, int64, error) {
	expenses, total, err := s.expenseRepo.List(ctx, ownerID, page, pageSize, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}

	dtos := make([]domain.ExpenseDTO, len(expenses))
	for i, expense := range expenses {
		dtos[i] = mapper.ToExpenseDTO(&expense)
	}

	return dtos, total, nil
}

func (s *ExpenseService) Update(ctx context.Context, ownerID, id uuid.UUID, req *domain.UpdateExpenseRequest) (*domain.ExpenseDTO, error) {
	expense, err := s.expenseRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	expense.Date = parseDate(req.Date)
	expense.Category = req.Category
	expense.Amount = money(req.Amount)
	expense.Description = req.Description
	expense.Supplier = req.Supplier
	expense.PaymentSource = req.PaymentSource
	expense.VATAmount = money(req.VATAmount)
	expense.TotalIncTax = money(req.TotalIncTax)
	expense.IsRecurring = req.IsRecurring
	expense.TaxDeductible = req.TaxDeductible

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	dto := mapper.ToExpenseDTO(expense)
	return &dto, nil
}

func (s *ExpenseService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.expenseRepo.GetByID(ctx, ownerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get expense: %w", err)
	}

	if err := s.expenseRepo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	return nil
}
