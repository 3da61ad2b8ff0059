package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/domain"
	"gorm.io/gorm"
)

type IncomeRepository struct {
	db *gorm.DB
}

func NewIncomeRepository(db *gorm.DB) *IncomeRepository {
	return &IncomeRepository{db: db}
}

func (r *IncomeRepository) Create(ctx context.Context, income *domain.Income) error {
	return r.db.WithContext(ctx).Create(income).Error
}

func (r *IncomeRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Income, error) {
	var income domain.Income
	err := r.db.WithContext(ctx).
		First(&income, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &income, nil
}

func (r *IncomeRepository) List(ctx context.Context, ownerID uuid.UUID, page, pageSize int) ([]domain.Income, int64, error) {
	var entries []domain.Income
	var total int64

	offset := (page - 1) * pageSize

	if err := r.db.WithContext(ctx).Model(&domain.Income{}).
		Where("owner_id = ?", ownerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("date DESC, created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&entries).Error

	return entries, total, err
}

func (r *IncomeRepository) Update(ctx context.Context, income *domain.Income) error {
	return r.db.WithContext(ctx).Save(income).Error
}

func (r *IncomeRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Income{}, "id = ? AND owner_id = ?", id, ownerID).Error
}

// ListForPeriod returns income entries dated in [from, to) for reporting.
func (r *IncomeRepository) ListForPeriod(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]domain.Income, error) {
	var entries []domain.Income
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND date >= ? AND date < ?", ownerID, from, to).
		Order("date").
		Find(&entries).Error
	return entries, err
}

// DeleteAllForOwner removes every income entry for an owner.
func (r *IncomeRepository) DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Income{}, "owner_id = ?", ownerID)
	return result.RowsAffected, result.Error
}
