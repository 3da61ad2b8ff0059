package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sequence kinds
const (
	SequenceKindOrder = "order"
	SequenceKindQuote = "quote"
)

// SequenceRepository backs the per-owner sequential order and quote
// numbers. Numbers are unique within one owner and kind.
type SequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// Next atomically claims the next number for an owner and kind. A row
// lock guards against concurrent requests claiming the same number.
func (r *SequenceRepository) Next(ctx context.Context, ownerID uuid.UUID, kind string) (int, error) {
	var next int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq domain.OrderSequence
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("owner_id = ? AND kind = ?", ownerID, kind).
			First(&seq)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			seq = domain.OrderSequence{
				OwnerID:   ownerID,
				Kind:      kind,
				NextValue: 2,
			}
			if err := tx.Create(&seq).Error; err != nil {
				return fmt.Errorf("failed to create sequence: %w", err)
			}
			next = 1
			return nil
		}
		if result.Error != nil {
			return fmt.Errorf("failed to get sequence: %w", result.Error)
		}

		next = seq.NextValue
		if err := tx.Model(&seq).Update("next_value", next+1).Error; err != nil {
			return fmt.Errorf("failed to advance sequence: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return next, nil
}

// Bump raises the sequence so the next claimed number is above a value
// seen during import. It never lowers the sequence.
func (r *SequenceRepository) Bump(ctx context.Context, ownerID uuid.UUID, kind string, seen int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq domain.OrderSequence
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("owner_id = ? AND kind = ?", ownerID, kind).
			First(&seq)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return tx.Create(&domain.OrderSequence{
				OwnerID:   ownerID,
				Kind:      kind,
				NextValue: seen + 1,
			}).Error
		}
		if result.Error != nil {
			return result.Error
		}

		if seen+1 > seq.NextValue {
			return tx.Model(&seq).Update("next_value", seen+1).Error
		}
		return nil
	})
}
