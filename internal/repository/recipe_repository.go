package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/domain"
	"gorm.io/gorm"
)

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *RecipeRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Recipe, error) {
	var recipe domain.Recipe
	err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		First(&recipe, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetByName finds a recipe by name within the owner scope
func (r *RecipeRepository) GetByName(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Recipe, error) {
	var recipe domain.Recipe
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND LOWER(name) = LOWER(?)", ownerID, name).
		First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *RecipeRepository) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Recipe, error) {
	var recipes []domain.Recipe
	err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		Where("owner_id = ?", ownerID).
		Order("name").
		Find(&recipes).Error
	return recipes, err
}

func (r *RecipeRepository) Update(ctx context.Context, recipe *domain.Recipe) error {
	return r.db.WithContext(ctx).Omit("Ingredients").Save(recipe).Error
}

// ReplaceIngredients deletes and recreates a recipe's ingredient rows as
// a unit.
func (r *RecipeRepository) ReplaceIngredients(ctx context.Context, recipeID uuid.UUID, ingredients []domain.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.RecipeIngredient{}, "recipe_id = ?", recipeID).Error; err != nil {
			return err
		}
		for i := range ingredients {
			ingredients[i].RecipeID = recipeID
		}
		if len(ingredients) == 0 {
			return nil
		}
		return tx.Create(&ingredients).Error
	})
}

func (r *RecipeRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.RecipeIngredient{}, "recipe_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Recipe{}, "id = ? AND owner_id = ?", id, ownerID).Error
	})
}

// DeleteAllForOwner removes every recipe for an owner, join rows first.
func (r *RecipeRepository) DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("recipe_id IN (?)", tx.Model(&domain.Recipe{}).Select("id").Where("owner_id = ?", ownerID)).
			Delete(&domain.RecipeIngredient{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Recipe{}, "owner_id = ?", ownerID)
		deleted = result.RowsAffected
		return result.Error
	})
	return deleted, err
}
