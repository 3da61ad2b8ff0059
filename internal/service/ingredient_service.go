package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/domain"
	"github.com/ovenledger/bakery-api/internal/mapper"
	"github.com/ovenledger/bakery-api/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type IngredientService struct {
	ingredientRepo *repository.IngredientRepository
	logger         *zap.Logger
}

func NewIngredientService(ingredientRepo *repository.IngredientRepository, logger *zap.Logger) *IngredientService {
	return &IngredientService{
		ingredientRepo: ingredientRepo,
		logger:         logger,
	}
}

// costPerUnit derives the unit cost from pack cost and pack size when the
// caller did not supply one.
func costPerUnit(packCost, packSize, supplied string) string {
	if supplied != "" {
		if d, err := decimal.NewFromString(supplied); err == nil {
			return d.Round(4).String()
		}
	}

	cost, err := decimal.NewFromString(packCost)
	if err != nil {
		return "0"
	}
	size, err := decimal.NewFromString(packSize)
	if err != nil || size.IsZero() {
		return "0"
	}
	return cost.DivRound(size, 4).String()
}

func (s *IngredientService) Create(ctx context.Context, ownerID uuid.UUID, req *domain.CreateIngredientRequest) (*domain.IngredientDTO, error) {
	ingredient := &domain.Ingredient{
		OwnerID:     ownerID,
		Name:        req.Name,
		PackSize:    quantity(req.PackSize),
		PackCost:    money(req.PackCost),
		Unit:        req.Unit,
		CostPerUnit: costPerUnit(money(req.PackCost), quantity(req.PackSize), req.CostPerUnit),
	}

	if err := s.ingredientRepo.Create(ctx, ingredient); err != nil {
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}

	dto := mapper.ToIngredientDTO(ingredient)
	return &dto, nil
}

func (s *IngredientService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.IngredientDTO, error) {
	ingredient, err := s.ingredientRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ingredient: %w", err)
	}

	dto := mapper.ToIngredientDTO(ingredient)
	return &dto, nil
}

func (s *IngredientService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.IngredientDTO, error) {
	ingredients, err := s.ingredientRepo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}

	dtos := make([]domain.IngredientDTO, len(ingredients))
	for i, ingredient := range ingredients {
		dtos[i] = mapper.ToIngredientDTO(&ingredient)
	}

	return dtos, nil
}

func (s *IngredientService) Update(ctx context.Context, ownerID, id uuid.UUID, req *domain.UpdateIngredientRequest) (*domain.IngredientDTO, error) {
	ingredient, err := s.ingredientRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ingredient: %w", err)
	}

	ingredient.Name = req.Name
	ingredient.PackSize = quantity(req.PackSize)
	ingredient.PackCost = money(req.PackCost)
	ingredient.Unit = req.Unit
	ingredient.CostPerUnit = costPerUnit(ingredient.PackCost, ingredient.PackSize, req.CostPerUnit)

	if err := s.ingredientRepo.Update(ctx, ingredient); err != nil {
		return nil, fmt.Errorf("failed to update ingredient: %w", err)
	}

	dto := mapper.ToIngredientDTO(ingredient)
	return &dto, nil
}

func (s *IngredientService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.ingredientRepo.GetByID(ctx, ownerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get ingredient: %w", err)
	}

	if err := s.ingredientRepo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}

	return nil
}
