package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/domain"
	"gorm.io/gorm"
)

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *QuoteRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Contact").
		First(&quote, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// ExistsByNumber checks the per-owner quote-number uniqueness key
func (r *QuoteRepository) ExistsByNumber(ctx context.Context, ownerID uuid.UUID, number int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Quote{}).
		Where("owner_id = ? AND quote_number = ?", ownerID, number).
		Count(&count).Error
	return count > 0, err
}

// QuoteFilters holds filters for listing quotes
type QuoteFilters struct {
	Status    *domain.QuoteStatus
	ContactID *uuid.UUID
	EventFrom *time.Time
	EventTo   *time.Time
}

func (r *QuoteRepository) List(ctx context.Context, ownerID uuid.UUID, page, pageSize int, filters *QuoteFilters) ([]domain.Quote, int64, error) {
	var quotes []domain.Quote
	var total int64

	offset := (page - 1) * pageSize

	query := r.db.WithContext(ctx).Model(&domain.Quote{}).Where("owner_id = ?", ownerID)

	if filters != nil {
		if filters.Status != nil {
			query = query.Where("status = ?", *filters.Status)
		}
		if filters.ContactID != nil {
			query = query.Where("contact_id = ?", *filters.ContactID)
		}
		if filters.EventFrom != nil {
			query = query.Where("event_date >= ?", *filters.EventFrom)
		}
		if filters.EventTo != nil {
			query = query.Where("event_date <= ?", *filters.EventTo)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Items").
		Preload("Contact").
		Order("quote_number DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&quotes).Error

	return quotes, total, err
}

func (r *QuoteRepository) Update(ctx context.Context, quote *domain.Quote) error {
	return r.db.WithContext(ctx).Omit("Items").Save(quote).Error
}

// ReplaceItems deletes and recreates a quote's line items as a unit.
func (r *QuoteRepository) ReplaceItems(ctx context.Context, quoteID uuid.UUID, items []domain.QuoteItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.QuoteItem{}, "quote_id = ?", quoteID).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].QuoteID = quoteID
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (r *QuoteRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.QuoteItem{}, "quote_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Quote{}, "id = ? AND owner_id = ?", id, ownerID).Error
	})
}

// DeleteAllForOwner removes every quote for an owner, items first.
func (r *QuoteRepository) DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("quote_id IN (?)", tx.Model(&domain.Quote{}).Select("id").Where("owner_id = ?", ownerID)).
			Delete(&domain.QuoteItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Quote{}, "owner_id = ?", ownerID)
		deleted = result.RowsAffected
		return result.Error
	})
	return deleted, err
}
