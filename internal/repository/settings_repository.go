package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/domain"
	"gorm.io/gorm"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the owner's settings row, or nil when none exists yet.
func (r *SettingsRepository) Get(ctx context.Context, ownerID uuid.UUID) (*domain.Settings, error) {
	var settings domain.Settings
	err := r.db.WithContext(ctx).
		First(&settings, "owner_id = ?", ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert creates or updates the single settings row for an owner.
func (r *SettingsRepository) Upsert(ctx context.Context, settings *domain.Settings) error {
	existing, err := r.Get(ctx, settings.OwnerID)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.WithContext(ctx).Create(settings).Error
	}
	settings.ID = existing.ID
	settings.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(settings).Error
}

// Feature settings

func (r *SettingsRepository) GetFeature(ctx context.Context, ownerID uuid.UUID, key string) (*domain.FeatureSetting, error) {
	var fs domain.FeatureSetting
	err := r.db.WithContext(ctx).
		First(&fs, "owner_id = ? AND feature_key = ?", ownerID, key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fs, nil
}

func (r *SettingsRepository) ListFeatures(ctx context.Context, ownerID uuid.UUID) ([]domain.FeatureSetting, error) {
	var features []domain.FeatureSetting
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("feature_key").
		Find(&features).Error
	return features, err
}

// UpsertFeature creates or toggles one feature flag for an owner.
func (r *SettingsRepository) UpsertFeature(ctx context.Context, ownerID uuid.UUID, key string, enabled bool) error {
	existing, err := r.GetFeature(ctx, ownerID, key)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.WithContext(ctx).Create(&domain.FeatureSetting{
			OwnerID:    ownerID,
			FeatureKey: key,
			Enabled:    enabled,
		}).Error
	}
	existing.Enabled = enabled
	return r.db.WithContext(ctx).Save(existing).Error
}
