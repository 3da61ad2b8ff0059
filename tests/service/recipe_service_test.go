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
	"gorm.io/gorm"
)

func newRecipeService(t *testing.T) (*service.RecipeService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := service.NewRecipeService(
		repository.NewRecipeRepository(db),
		repository.NewIngredientRepository(db),
		zap.NewNop(),
	)
	return svc, db
}

func TestRecipeService_Cost_UsesIngredientUnitCost(t *testing.T) {
	svc, db := newRecipeService(t)
	ownerID := testutil.NewOwnerID()

	flour := &domain.Ingredient{
		OwnerID:     ownerID,
		Name:        "Flour",
		PackSize:    "1000.00",
		PackCost:    "2.50",
		Unit:        "g",
		CostPerUnit: "0.0025",
	}
	require.NoError(t, db.Create(flour).Error)

	recipe, err := svc.Create(context.Background(), ownerID, &domain.CreateRecipeRequest{
		Name:     "Sourdough loaf",
		Servings: 8,
		Ingredients: []domain.RecipeIngredientInput{
			{IngredientID: &flour.ID, Quantity: "500", Unit: "g"},
			{Quantity: "1", Unit: "tbsp", Cost: "0.75"}, // unlinked row keeps its stored cost
		},
	})
	require.NoError(t, err)

	cost, err := svc.Cost(context.Background(), ownerID, recipe.ID)
	require.NoError(t, err)

	// 500 * 0.0025 + 0.75
	assert.Equal(t, "2.00", cost.TotalCost)
	assert.Equal(t, "0.25", cost.CostPerServing)
}

func TestRecipeService_Cost_NoServingsOmitsPerServing(t *testing.T) {
	svc, _ := newRecipeService(t)
	ownerID := testutil.NewOwnerID()

	recipe, err := svc.Create(context.Background(), ownerID, &domain.CreateRecipeRequest{
		Name: "Glaze",
		Ingredients: []domain.RecipeIngredientInput{
			{Quantity: "1", Cost: "1.20"},
		},
	})
	require.NoError(t, err)

	cost, err := svc.Cost(context.Background(), ownerID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "1.20", cost.TotalCost)
	assert.Empty(t, cost.CostPerServing)
}

func TestRecipeService_Create_RejectsUnknownIngredient(t *testing.T) {
	svc, _ := newRecipeService(t)
	ownerID := testutil.NewOwnerID()

	ghost := testutil.NewOwnerID()
	_, err := svc.Create(context.Background(), ownerID, &domain.CreateRecipeRequest{
		Name: "Mystery cake",
		Ingredients: []domain.RecipeIngredientInput{
			{IngredientID: &ghost, Quantity: "1"},
		},
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestRecipeService_Update_ReplacesIngredients(t *testing.T) {
	svc, db := newRecipeService(t)
	ownerID := testutil.NewOwnerID()

	butter := &domain.Ingredient{
		OwnerID:     ownerID,
		Name:        "Butter",
		PackSize:    "500.00",
		PackCost:    "4.00",
		Unit:        "g",
		CostPerUnit: "0.008",
	}
	require.NoError(t, db.Create(butter).Error)

	recipe, err := svc.Create(context.Background(), ownerID, &domain.CreateRecipeRequest{
		Name: "Shortbread",
		Ingredients: []domain.RecipeIngredientInput{
			{Quantity: "1", Cost: "0.50"},
		},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), ownerID, recipe.ID, &domain.UpdateRecipeRequest{
		Name:     "Shortbread",
		Servings: 12,
		Ingredients: []domain.RecipeIngredientInput{
			{IngredientID: &butter.ID, Quantity: "250", Unit: "g"},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, 12, updated.Servings)

	cost, err := svc.Cost(context.Background(), ownerID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "2.00", cost.TotalCost) // 250 * 0.008
}
