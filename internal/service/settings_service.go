package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/domain"
	"github.com/ovenledger/bakery-api/internal/mapper"
	"github.com/ovenledger/bakery-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SettingsService struct {
	settingsRepo *repository.SettingsRepository
	taxRateRepo  *repository.TaxRateRepository
	logger       *zap.Logger
}

func NewSettingsService(
	settingsRepo *repository.SettingsRepository,
	taxRateRepo *repository.TaxRateRepository,
	logger *zap.Logger,
) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		taxRateRepo:  taxRateRepo,
		logger:       logger,
	}
}

// Get returns the owner's settings, falling back to defaults when no row
// has been saved yet.
func (s *SettingsService) Get(ctx context.Context, ownerID uuid.UUID) (*domain.SettingsDTO, error) {
	settings, err := s.settingsRepo.Get(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	if settings == nil {
		return &domain.SettingsDTO{
			CurrencyCode:   "USD",
			DefaultTaxRate: "0",
			WeekStartDay:   "monday",
		}, nil
	}

	dto := mapper.ToSettingsDTO(settings)
	return &dto, nil
}

func (s *SettingsService) Update(ctx context.Context, ownerID uuid.UUID, req *domain.UpdateSettingsRequest) (*domain.SettingsDTO, error) {
	settings := &domain.Settings{
		OwnerID:        ownerID,
		BusinessName:   req.BusinessName,
		CurrencyCode:   req.CurrencyCode,
		DefaultTaxRate: rate(req.DefaultTaxRate),
		WeekStartDay:   req.WeekStartDay,
	}
	if settings.CurrencyCode == "" {
		settings.CurrencyCode = "USD"
	}
	if settings.WeekStartDay == "" {
		settings.WeekStartDay = "monday"
	}

	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	dto := mapper.ToSettingsDTO(settings)
	return &dto, nil
}

func (s *SettingsService) ListTaxRates(ctx context.Context, ownerID uuid.UUID) ([]domain.TaxRateDTO, error) {
	rates, err := s.taxRateRepo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax rates: %w", err)
	}

	dtos := make([]domain.TaxRateDTO, len(rates))
	for i, r := range rates {
		dtos[i] = mapper.ToTaxRateDTO(&r)
	}

	return dtos, nil
}

func (s *SettingsService) CreateTaxRate(ctx context.Context, ownerID uuid.UUID, req *domain.CreateTaxRateRequest) (*domain.TaxRateDTO, error) {
	if req.IsDefault {
		if err := s.taxRateRepo.ClearDefault(ctx, ownerID); err != nil {
			return nil, fmt.Errorf("failed to clear default tax rate: %w", err)
		}
	}

	taxRate := &domain.TaxRate{
		OwnerID:     ownerID,
		Name:        req.Name,
		RatePercent: rate(req.RatePercent),
		IsDefault:   req.IsDefault,
	}

	if err := s.taxRateRepo.Create(ctx, taxRate); err != nil {
		return nil, fmt.Errorf("failed to create tax rate: %w", err)
	}

	dto := mapper.ToTaxRateDTO(taxRate)
	return &dto, nil
}

func (s *SettingsService) DeleteTaxRate(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.taxRateRepo.GetByID(ctx, ownerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get tax rate: %w", err)
	}

	if err := s.taxRateRepo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("failed to delete tax rate: %w", err)
	}

	return nil
}

func (s *SettingsService) ListFeatures(ctx context.Context, ownerID uuid.UUID) ([]domain.FeatureSettingDTO, error) {
	features, err := s.settingsRepo.ListFeatures(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list features: %w", err)
	}

	dtos := make([]domain.FeatureSettingDTO, len(features))
	for i, f := range features {
		dtos[i] = mapper.ToFeatureSettingDTO(&f)
	}

	return dtos, nil
}

// GetFeature reports whether a feature is enabled. Unknown keys read as
// disabled rather than erroring.
func (s *SettingsService) GetFeature(ctx context.Context, ownerID uuid.UUID, key string) (*domain.FeatureSettingDTO, error) {
	feature, err := s.settingsRepo.GetFeature(ctx, ownerID, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get feature: %w", err)
	}
	if feature == nil {
		return &domain.FeatureSettingDTO{FeatureKey: key, Enabled: false}, nil
	}

	dto := mapper.ToFeatureSettingDTO(feature)
	return &dto, nil
}

func (s *SettingsService) SetFeature(ctx context.Context, ownerID uuid.UUID, key string, enabled bool) (*domain.FeatureSettingDTO, error) {
	if err := s.settingsRepo.UpsertFeature(ctx, ownerID, key, enabled); err != nil {
		return nil, fmt.Errorf("failed to save feature: %w", err)
	}

	return &domain.FeatureSettingDTO{FeatureKey: key, Enabled: enabled}, nil
}
