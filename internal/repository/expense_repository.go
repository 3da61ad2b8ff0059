package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/domain"
	"gorm.io/gorm"
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *ExpenseRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Expense, error) {
	var expense domain.Expense
	err := r.db.WithContext(ctx).
		First(&expense, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// ExpenseFilters holds filters for listing expenses
type ExpenseFilters struct {
	Category string
	DateFrom *time.Time
	DateTo   *time.Time
}

func (r *ExpenseRepository) List(ctx context.Context, ownerID uuid.UUID, page, pageSize int, filters *ExpenseFilters) ([]domain.Expense, int64, error) {
	var expenses []domain.Expense
	var total int64

	offset := (page - 1) * pageSize

	query := r.db.WithContext(ctx).Model(&domain.Expense{}).Where("owner_id = ?", ownerID)

	if filters != nil {
		if filters.Category != "" {
			query = query.Where("category = ?", filters.Category)
		}
		if filters.DateFrom != nil {
			query = query.Where("date >= ?", *filters.DateFrom)
		}
		if filters.DateTo != nil {
			query = query.Where("date <= ?", *filters.DateTo)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("date DESC, created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&expenses).Error

	return expenses, total, err
}

// ExistsByNaturalKey checks for a duplicate by the import dedup key:
// date plus description plus amount within the owner scope.
func (r *ExpenseRepository) ExistsByNaturalKey(ctx context.Context, ownerID uuid.UUID, date time.Time, description, amount string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Expense{}).
		Where("owner_id = ? AND date = ? AND LOWER(description) = LOWER(?) AND amount = ?",
			ownerID, date, description, amount).
		Count(&count).Error
	return count > 0, err
}

func (r *ExpenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

func (r *ExpenseRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Expense{}, "id = ? AND owner_id = ?", id, ownerID).Error
}

// DeleteAllForOwner removes every expense for an owner.
func (r *ExpenseRepository) DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Expense{}, "owner_id = ?", ownerID)
	return result.RowsAffected, result.Error
}

// ListRecurring returns all recurring-flagged expenses across owners for
// the monthly materialization job.
func (r *ExpenseRepository) ListRecurring(ctx context.Context) ([]domain.Expense, error) {
	var expenses []domain.Expense
	err := r.db.WithContext(ctx).
		Where("is_recurring = ?", true).
		Order("owner_id, created_at").
		Find(&expenses).Error
	return expenses, err
}

// ListForPeriod returns expenses dated in [from, to) for reporting.
func (r *ExpenseRepository) ListForPeriod(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]domain.Expense, error) {
	var expenses []domain.Expense
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND date >= ? AND date < ?", ownerID, from, to).
		Order("date").
		Find(&expenses).Error
	return expenses, err
}
