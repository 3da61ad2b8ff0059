package service_test

import (
	"context"
	"testing"

	"github.com/ovenledger/bakery-api/internal/domain"
	"github.com/ovenledger/bakery-api/internal/repository"
	"github.com/ovenledger/bakery-api/internal/service"
	"github.com/ovenledger/bakery-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSettingsService(t *testing.T) *service.SettingsService {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return service.NewSettingsService(
		repository.NewSettingsRepository(db),
		repository.NewTaxRateRepository(db),
		zap.NewNop(),
	)
}

func TestSettingsService_Get_DefaultsWhenUnsaved(t *testing.T) {
	svc := newSettingsService(t)

	dto, err := svc.Get(context.Background(), testutil.NewOwnerID())
	require.NoError(t, err)
	assert.Equal(t, "USD", dto.CurrencyCode)
	assert.Equal(t, "0", dto.DefaultTaxRate)
	assert.Equal(t, "monday", dto.WeekStartDay)
	assert.Empty(t, dto.BusinessName)
}

func TestSettingsService_Update_RoundTrips(t *testing.T) {
	svc := newSettingsService(t)
	ownerID := testutil.NewOwnerID()

	_, err := svc.Update(context.Background(), ownerID, &domain.UpdateSettingsRequest{
		BusinessName:   "Rise & Shine Bakery",
		CurrencyCode:   "NOK",
		DefaultTaxRate: "25",
		WeekStartDay:   "sunday",
	})
	require.NoError(t, err)

	dto, err := svc.Get(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, "Rise & Shine Bakery", dto.BusinessName)
	assert.Equal(t, "NOK", dto.CurrencyCode)
	assert.Equal(t, "25", dto.DefaultTaxRate)
	assert.Equal(t, "sunday", dto.WeekStartDay)

	// A second update overwrites the same row.
	_, err = svc.Update(context.Background(), ownerID, &domain.UpdateSettingsRequest{
		BusinessName: "Rise & Shine Bakery",
	})
	require.NoError(t, err)

	dto, err = svc.Get(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, "USD", dto.CurrencyCode)
}

func TestSettingsService_CreateTaxRate_DefaultIsExclusive(t *testing.T) {
	svc := newSettingsService(t)
	ownerID := testutil.NewOwnerID()

	standard, err := svc.CreateTaxRate(context.Background(), ownerID, &domain.CreateTaxRateRequest{
		Name: "Standard", RatePercent: "25", IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, standard.IsDefault)

	reduced, err := svc.CreateTaxRate(context.Background(), ownerID, &domain.CreateTaxRateRequest{
		Name: "Reduced", RatePercent: "15", IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, reduced.IsDefault)

	rates, err := svc.ListTaxRates(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, rates, 2)

	defaults := 0
	for _, r := range rates {
		if r.IsDefault {
			defaults++
			assert.Equal(t, "Reduced", r.Name)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestSettingsService_DeleteTaxRate_NotFound(t *testing.T) {
	svc := newSettingsService(t)

	err := svc.DeleteTaxRate(context.Background(), testutil.NewOwnerID(), testutil.NewOwnerID())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestSettingsService_GetFeature_UnknownKeyReadsDisabled(t *testing.T) {
	svc := newSettingsService(t)
	ownerID := testutil.NewOwnerID()

	feature, err := svc.GetFeature(context.Background(), ownerID, "recipe_costing")
	require.NoError(t, err)
	assert.Equal(t, "recipe_costing", feature.FeatureKey)
	assert.False(t, feature.Enabled)
}

func TestSettingsService_SetFeature_TogglesAndPersists(t *testing.T) {
	svc := newSettingsService(t)
	ownerID := testutil.NewOwnerID()

	_, err := svc.SetFeature(context.Background(), ownerID, "recipe_costing", true)
	require.NoError(t, err)

	feature, err := svc.GetFeature(context.Background(), ownerID, "recipe_costing")
	require.NoError(t, err)
	assert.True(t, feature.Enabled)

	_, err = svc.SetFeature(context.Background(), ownerID, "recipe_costing", false)
	require.NoError(t, err)

	feature, err = svc.GetFeature(context.Background(), ownerID, "recipe_costing")
	require.NoError(t, err)
	assert.False(t, feature.Enabled)
}
