package repository_test

import (
	"context"
	"testing"

	"github.com/ovenledger/bakery-api/internal/domain"
	"github.com/ovenledger/bakery-api/internal/repository"
	"github.com/ovenledger/bakery-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_CreateAndGetByNumber(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewOrderRepository(db)
	ownerID := testutil.NewOwnerID()

	order := &domain.Order{
		OwnerID:      ownerID,
		OrderNumber:  42,
		EventType:    domain.EventTypeBirthday,
		Status:       domain.OrderStatusConfirmed,
		DeliveryType: domain.DeliveryTypeDelivery,
		Discount:     "0.00",
		SetupFee:     "0.00",
		TaxRate:      "0",
		Total:        "120.00",
		Items: []domain.OrderItem{
			{Name: "Chocolate cake", Quantity: "1.00", UnitPrice: "120.00", LinePrice: "120.00"},
		},
	}
	require.NoError(t, repo.Create(context.Background(), order))

	found, err := repo.GetByNumber(context.Background(), ownerID, 42)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, found.Status)
	assert.Len(t, found.Items, 1)
	assert.Equal(t, "Chocolate cake", found.Items[0].Name)
}

func TestOrderRepository_MoneyColumnsKeepScale(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewOrderRepository(db)
	ownerID := testutil.NewOwnerID()

	order := &domain.Order{
		OwnerID:      ownerID,
		OrderNumber:  9,
		EventType:    domain.EventTypeOther,
		Status:       domain.OrderStatusConfirmed,
		DeliveryType: domain.DeliveryTypePickup,
		Discount:     "5.00",
		SetupFee:     "0.50",
		TaxRate:      "12.5",
		Total:        "45.00",
		Items: []domain.OrderItem{
			{Name: "Sourdough loaf", Quantity: "10.00", UnitPrice: "4.50", LinePrice: "45.00"},
		},
	}
	require.NoError(t, repo.Create(context.Background(), order))

	found, err := repo.GetByID(context.Background(), ownerID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "45.00", found.Total)
	assert.Equal(t, "5.00", found.Discount)
	assert.Equal(t, "0.50", found.SetupFee)
	assert.Equal(t, "12.5", found.TaxRate)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "4.50", found.Items[0].UnitPrice)
	assert.Equal(t, "45.00", found.Items[0].LinePrice)
}

func TestOrderRepository_ExistsByNumber(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewOrderRepository(db)
	ownerID := testutil.NewOwnerID()

	testutil.CreateTestOrder(t, db, ownerID, 7, domain.OrderStatusQuote, "50.00")

	exists, err := repo.ExistsByNumber(context.Background(), ownerID, 7)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByNumber(context.Background(), ownerID, 8)
	require.NoError(t, err)
	assert.False(t, exists)

	// Numbers are scoped per owner
	exists, err = repo.ExistsByNumber(context.Background(), testutil.NewOwnerID(), 7)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestOrderRepository_ReplaceItems(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewOrderRepository(db)
	ownerID := testutil.NewOwnerID()

	order := &domain.Order{
		OwnerID:      ownerID,
		OrderNumber:  1,
		EventType:    domain.EventTypeOther,
		Status:       domain.OrderStatusQuote,
		DeliveryType: domain.DeliveryTypePickup,
		Discount:     "0.00",
		SetupFee:     "0.00",
		TaxRate:      "0",
		Total:        "0.00",
		Items: []domain.OrderItem{
			{Name: "Old item", Quantity: "1.00", UnitPrice: "10.00", LinePrice: "10.00"},
		},
	}
	require.NoError(t, repo.Create(context.Background(), order))

	replacement := []domain.OrderItem{
		{Name: "Cupcakes", Quantity: "12.00", UnitPrice: "3.50", LinePrice: "42.00"},
		{Name: "Delivery", Quantity: "1.00", UnitPrice: "15.00", LinePrice: "15.00"},
	}
	require.NoError(t, repo.ReplaceItems(context.Background(), order.ID, replacement))

	found, err := repo.GetByID(context.Background(), ownerID, order.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 2)
	assert.Equal(t, "Cupcakes", found.Items[0].Name)
	assert.Equal(t, "Delivery", found.Items[1].Name)
}

func TestOrderRepository_ReplaceItems_EmptyClearsAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewOrderRepository(db)
	ownerID := testutil.NewOwnerID()

	order := &domain.Order{
		OwnerID:      ownerID,
		OrderNumber:  2,
		EventType:    domain.EventTypeOther,
		Status:       domain.OrderStatusQuote,
		DeliveryType: domain.DeliveryTypePickup,
		Discount:     "0.00",
		SetupFee:     "0.00",
		TaxRate:      "0",
		Total:        "0.00",
		Items: []domain.OrderItem{
			{Name: "Item", Quantity: "1.00", UnitPrice: "5.00", LinePrice: "5.00"},
		},
	}
	require.NoError(t, repo.Create(context.Background(), order))

	require.NoError(t, repo.ReplaceItems(context.Background(), order.ID, nil))

	found, err := repo.GetByID(context.Background(), ownerID, order.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Items)
}

func TestOrderRepository_List_FiltersByStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewOrderRepository(db)
	ownerID := testutil.NewOwnerID()

	testutil.CreateTestOrder(t, db, ownerID, 1, domain.OrderStatusQuote, "10.00")
	testutil.CreateTestOrder(t, db, ownerID, 2, domain.OrderStatusConfirmed, "20.00")
	testutil.CreateTestOrder(t, db, ownerID, 3, domain.OrderStatusConfirmed, "30.00")

	status := domain.OrderStatusConfirmed
	orders, total, err := repo.List(context.Background(), ownerID, 1, 20, &repository.OrderFilters{Status: &status})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, orders, 2)
	// Newest order number first
	assert.Equal(t, 3, orders[0].OrderNumber)
}

func TestOrderRepository_DeleteAllForOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewOrderRepository(db)
	ownerID := testutil.NewOwnerID()
	otherOwner := testutil.NewOwnerID()

	order := &domain.Order{
		OwnerID:      ownerID,
		OrderNumber:  1,
		EventType:    domain.EventTypeOther,
		Status:       domain.OrderStatusQuote,
		DeliveryType: domain.DeliveryTypePickup,
		Discount:     "0.00",
		SetupFee:     "0.00",
		TaxRate:      "0",
		Total:        "0.00",
		Items: []domain.OrderItem{
			{Name: "Item", Quantity: "1.00", UnitPrice: "5.00", LinePrice: "5.00"},
		},
	}
	require.NoError(t, repo.Create(context.Background(), order))
	testutil.CreateTestOrder(t, db, otherOwner, 1, domain.OrderStatusQuote, "99.00")

	deleted, err := repo.DeleteAllForOwner(context.Background(), ownerID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	var itemCount int64
	require.NoError(t, db.Model(&domain.OrderItem{}).Count(&itemCount).Error)
	assert.EqualValues(t, 0, itemCount)

	// The other owner's data is untouched
	_, total, err := repo.List(context.Background(), otherOwner, 1, 20, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}
