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

type RecipeService struct {
	recipeRepo     *repository.RecipeRepository
	ingredientRepo *repository.IngredientRepository
	logger         *zap.Logger
}

func NewRecipeService(
	recipeRepo *repository.RecipeRepository,
	ingredientRepo *repository.IngredientRepository,
	logger *zap.Logger,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		logger:         logger,
	}
}

func (s *RecipeService) buildIngredients(ctx context.Context, ownerID uuid.UUID, inputs []domain.RecipeIngredientInput) ([]domain.RecipeIngredient, error) {
	rows := make([]domain.RecipeIngredient, len(inputs))
	for i, in := range inputs {
		if in.IngredientID != nil {
			if _, err := s.ingredientRepo.GetByID(ctx, ownerID, *in.IngredientID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, fmt.Errorf("%w: ingredient not found", ErrInvalidInput)
				}
				return nil, fmt.Errorf("failed to check ingredient: %w", err)
			}
		}
		rows[i] = domain.RecipeIngredient{
			IngredientID: in.IngredientID,
			Quantity:     quantity(in.Quantity),
			Unit:         in.Unit,
			Cost:         money(in.Cost),
		}
	}
	return rows, nil
}

func (s *RecipeService) Create(ctx context.Context, ownerID uuid.UUID, req *domain.CreateRecipeRequest) (*domain.RecipeDTO, error) {
	ingredients, err := s.buildIngredients(ctx, ownerID, req.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe := &domain.Recipe{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Servings:    req.Servings,
		Ingredients: ingredients,
	}

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	return s.GetByID(ctx, ownerID, recipe.ID)
}

func (s *RecipeService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.RecipeDTO, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	dto := mapper.ToRecipeDTO(recipe)
	return &dto, nil
}

func (s *RecipeService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.RecipeDTO, error) {
	recipes, err := s.recipeRepo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	dtos := make([]domain.RecipeDTO, len(recipes))
	for i, recipe := range recipes {
		dtos[i] = mapper.ToRecipeDTO(&recipe)
	}

	return dtos, nil
}

func (s *RecipeService) Update(ctx context.Context, ownerID, id uuid.UUID, req *domain.UpdateRecipeRequest) (*domain.RecipeDTO, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	ingredients, err := s.buildIngredients(ctx, ownerID, req.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe.Name = req.Name
	recipe.Description = req.Description
	recipe.Category = req.Category
	recipe.Servings = req.Servings
	recipe.Ingredients = nil

	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}

	if err := s.recipeRepo.ReplaceIngredients(ctx, recipe.ID, ingredients); err != nil {
		return nil, fmt.Errorf("failed to replace recipe ingredients: %w", err)
	}

	return s.GetByID(ctx, ownerID, id)
}

func (s *RecipeService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.recipeRepo.GetByID(ctx, ownerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get recipe: %w", err)
	}

	if err := s.recipeRepo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	return nil
}

// Cost computes a recipe's total cost. Rows with a live ingredient
// reference use costPerUnit * quantity; rows without one fall back to
// their stored line cost.
func (s *RecipeService) Cost(ctx context.Context, ownerID, id uuid.UUID) (*domain.RecipeCostDTO, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	total := decimal.Zero
	for _, row := range recipe.Ingredients {
		if row.Ingredient != nil {
			unitCost, err := decimal.NewFromString(row.Ingredient.CostPerUnit)
			if err == nil {
				qty, qerr := decimal.NewFromString(row.Quantity)
				if qerr == nil {
					total = total.Add(unitCost.Mul(qty))
					continue
				}
			}
		}
		if stored, err := decimal.NewFromString(row.Cost); err == nil {
			total = total.Add(stored)
		}
	}

	cost := &domain.RecipeCostDTO{
		RecipeID:  recipe.ID,
		TotalCost: total.Round(2).StringFixed(2),
	}
	if recipe.Servings > 0 {
		cost.CostPerServing = total.DivRound(decimal.NewFromInt(int64(recipe.Servings)), 2).StringFixed(2)
	}

	return cost, nil
}
