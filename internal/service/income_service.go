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

type IncomeService struct {
	incomeRepo *repository.IncomeRepository
	logger     *zap.Logger
}

func NewIncomeService(incomeRepo *repository.IncomeRepository, logger *zap.Logger) *IncomeService {
	return &IncomeService{
		incomeRepo: incomeRepo,
		logger:     logger,
	}
}

func (s *IncomeService) Create(ctx context.Context, ownerID uuid.UUID, req *domain.CreateIncomeRequest) (*domain.IncomeDTO, error) {
	income := &domain.Income{
		OwnerID:     ownerID,
		Date:        parseDate(req.Date),
		Category:    req.Category,
		Amount:      money(req.Amount),
		Description: req.Description,
		Source:      req.Source,
	}

	if err := s.incomeRepo.Create(ctx, income); err != nil {
		return nil, fmt.Errorf("failed to create income: %w", err)
	}

	dto := mapper.ToIncomeDTO(income)
	return &dto, nil
}

func (s *IncomeService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.IncomeDTO, error) {
	income, err := s.incomeRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get income: %w", err)
	}

	dto := mapper.ToIncomeDTO(income)
	return &dto, nil
}

func (s *IncomeService) List(ctx context.Context, ownerID uuid.UUID, page, pageSize int) ([]domain.IncomeDTO, int64, error) {
	entries, total, err := s.incomeRepo.List(ctx, ownerID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list income: %w", err)
	}

	dtos := make([]domain.IncomeDTO, len(entries))
	for i, income := range entries {
		dtos[i] = mapper.ToIncomeDTO(&income)
	}

	return dtos, total, nil
}

func (s *IncomeService) Update(ctx context.Context, ownerID, id uuid.UUID, req *domain.UpdateIncomeRequest) (*domain.IncomeDTO, error) {
	income, err := s.incomeRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get income: %w", err)
	}

	income.Date = parseDate(req.Date)
	income.Category = req.Category
	income.Amount = money(req.Amount)
	income.Description = req.Description
	income.Source = req.Source

	if err := s.incomeRepo.Update(ctx, income); err != nil {
		return nil, fmt.Errorf("failed to update income: %w", err)
	}

	dto := mapper.ToIncomeDTO(income)
	return &dto, nil
}

func (s *IncomeService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.incomeRepo.GetByID(ctx, ownerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get income: %w", err)
	}

	if err := s.incomeRepo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}

	return nil
}
