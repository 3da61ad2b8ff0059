package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/domain"
	"gorm.io/gorm"
)

type IngredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

func (r *IngredientRepository) Create(ctx context.Context, ingredient *domain.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

func (r *IngredientRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Ingredient, error) {
	var ingredient domain.Ingredient
	err := r.db.WithContext(ctx).
		First(&ingredient, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// GetByName finds an ingredient by name within the owner scope
func (r *IngredientRepository) GetByName(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Ingredient, error) {
	var ingredient domain.Ingredient
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND LOWER(name) = LOWER(?)", ownerID, name).
		First(&ingredient).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *IngredientRepository) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name").
		Find(&ingredients).Error
	return ingredients, err
}

func (r *IngredientRepository) Update(ctx context.Context, ingredient *domain.Ingredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

func (r *IngredientRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Ingredient{}, "id = ? AND owner_id = ?", id, ownerID).Error
}

// DeleteAllForOwner removes every ingredient for an owner.
func (r *IngredientRepository) DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Ingredient{}, "owner_id = ?", ownerID)
	return result.RowsAffected, result.Error
}
