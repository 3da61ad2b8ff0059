package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/domain"
	"github.com/ovenledger/bakery-api/internal/repository"
	"github.com/ovenledger/bakery-api/internal/service"
	"github.com/ovenledger/bakery-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newOrderService(t *testing.T) (*service.OrderService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := service.NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewContactRepository(db),
		repository.NewSequenceRepository(db),
		zap.NewNop(),
	)
	return svc, db
}

func TestOrderService_Create_ClaimsSequentialNumbers(t *testing.T) {
	svc, _ := newOrderService(t)
	ownerID := testutil.NewOwnerID()

	first, err := svc.Create(context.Background(), ownerID, &domain.CreateOrderRequest{
		EventType: domain.EventTypeBirthday,
		Total:     "150",
		Items: []domain.OrderItemInput{
			{Name: "Cake", Quantity: "1", UnitPrice: "150", LinePrice: "150"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.OrderNumber)
	assert.Equal(t, "150.00", first.Total)
	require.Len(t, first.Items, 1)

	second, err := svc.Create(context.Background(), ownerID, &domain.CreateOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, second.OrderNumber)
}

func TestOrderService_Create_DefaultsEmptyEnums(t *testing.T) {
	svc, _ := newOrderService(t)
	ownerID := testutil.NewOwnerID()

	dto, err := svc.Create(context.Background(), ownerID, &domain.CreateOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, domain.EventTypeOther, dto.EventType)
	assert.Equal(t, domain.OrderStatusQuote, dto.Status)
	assert.Equal(t, domain.DeliveryTypePickup, dto.DeliveryType)
}

func TestOrderService_Create_RejectsUnknownContact(t *testing.T) {
	svc, _ := newOrderService(t)
	ownerID := testutil.NewOwnerID()

	ghost := uuid.New()
	_, err := svc.Create(context.Background(), ownerID, &domain.CreateOrderRequest{ContactID: &ghost})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestOrderService_Update_ReplacesItems(t *testing.T) {
	svc, _ := newOrderService(t)
	ownerID := testutil.NewOwnerID()

	created, err := svc.Create(context.Background(), ownerID, &domain.CreateOrderRequest{
		Items: []domain.OrderItemInput{
			{Name: "Old item", Quantity: "1", UnitPrice: "10", LinePrice: "10"},
		},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), ownerID, created.ID, &domain.UpdateOrderRequest{
		Status: domain.OrderStatusConfirmed,
		Total:  "57",
		Items: []domain.OrderItemInput{
			{Name: "Cupcakes", Quantity: "12", UnitPrice: "3.50", LinePrice: "42"},
			{Name: "Delivery", Quantity: "1", UnitPrice: "15", LinePrice: "15"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, updated.Status)
	require.Len(t, updated.Items, 2)
	assert.Equal(t, "Cupcakes", updated.Items[0].Name)
	assert.Equal(t, "42.00", updated.Items[0].LinePrice)
}

func TestOrderService_GetByID_NotFound(t *testing.T) {
	svc, _ := newOrderService(t)

	_, err := svc.GetByID(context.Background(), testutil.NewOwnerID(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestOrderService_Delete(t *testing.T) {
	svc, _ := newOrderService(t)
	ownerID := testutil.NewOwnerID()

	created, err := svc.Create(context.Background(), ownerID, &domain.CreateOrderRequest{})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), ownerID, created.ID))

	_, err = svc.GetByID(context.Background(), ownerID, created.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), ownerID, created.ID), service.ErrNotFound)
}
