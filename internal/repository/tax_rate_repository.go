package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/domain"
	"gorm.io/gorm"
)

type TaxRateRepository struct {
	db *gorm.DB
}

func NewTaxRateRepository(db *gorm.DB) *TaxRateRepository {
	return &TaxRateRepository{db: db}
}

func (r *TaxRateRepository) Create(ctx context.Context, rate *domain.TaxRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}

func (r *TaxRateRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.TaxRate, error) {
	var rate domain.TaxRate
	err := r.db.WithContext(ctx).
		First(&rate, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *TaxRateRepository) List(ctx context.Context, ownerID uuid.UUID) ([]domain.TaxRate, error) {
	var rates []domain.TaxRate
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name").
		Find(&rates).Error
	return rates, err
}

func (r *TaxRateRepository) Update(ctx context.Context, rate *domain.TaxRate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

func (r *TaxRateRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.TaxRate{}, "id = ? AND owner_id = ?", id, ownerID).Error
}

// ClearDefault unsets the default flag on all of an owner's rates so a
// new default can be set.
func (r *TaxRateRepository) ClearDefault(ctx context.Context, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&domain.TaxRate{}).
		Where("owner_id = ?", ownerID).
		Update("is_default", false).Error
}
