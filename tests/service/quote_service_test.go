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

func newQuoteService(t *testing.T) (*service.QuoteService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := service.NewQuoteService(
		repository.NewQuoteRepository(db),
		repository.NewOrderRepository(db),
		repository.NewContactRepository(db),
		repository.NewSequenceRepository(db),
		zap.NewNop(),
	)
	return svc, db
}

func TestQuoteService_Create_ClaimsQuoteNumber(t *testing.T) {
	svc, _ := newQuoteService(t)
	ownerID := testutil.NewOwnerID()

	dto, err := svc.Create(context.Background(), ownerID, &domain.CreateQuoteRequest{
		EventType: domain.EventTypeWedding,
		Total:     "500",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, dto.QuoteNumber)
	assert.Equal(t, domain.QuoteStatusDraft, dto.Status)
	assert.Equal(t, "500.00", dto.Total)
}

func TestQuoteService_ConvertToOrder(t *testing.T) {
	svc, db := newQuoteService(t)
	ownerID := testutil.NewOwnerID()

	contact := testutil.CreateTestContact(t, db, ownerID, "Jane", "Doe", "jane@example.com")

	quote, err := svc.Create(context.Background(), ownerID, &domain.CreateQuoteRequest{
		ContactID: &contact.ID,
		EventType: domain.EventTypeWedding,
		Total:     "500",
		Items: []domain.OrderItemInput{
			{Name: "Tiered cake", Quantity: "1", UnitPrice: "450", LinePrice: "450"},
			{Name: "Setup", Quantity: "1", UnitPrice: "50", LinePrice: "50"},
		},
	})
	require.NoError(t, err)

	order, err := svc.ConvertToOrder(context.Background(), ownerID, quote.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, order.OrderNumber)
	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
	assert.Equal(t, domain.EventTypeWedding, order.EventType)
	assert.Equal(t, "500.00", order.Total)
	require.NotNil(t, order.ContactID)
	assert.Equal(t, contact.ID, *order.ContactID)

	require.Len(t, order.Items, 2)
	assert.Equal(t, "Tiered cake", order.Items[0].Name)

	// The source quote is marked accepted and keeps its own number.
	reloaded, err := svc.GetByID(context.Background(), ownerID, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusAccepted, reloaded.Status)
	assert.Equal(t, 1, reloaded.QuoteNumber)
}

func TestQuoteService_ConvertToOrder_SequencesAreIndependent(t *testing.T) {
	svc, _ := newQuoteService(t)
	ownerID := testutil.NewOwnerID()

	first, err := svc.Create(context.Background(), ownerID, &domain.CreateQuoteRequest{})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), ownerID, &domain.CreateQuoteRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, second.QuoteNumber)

	order, err := svc.ConvertToOrder(context.Background(), ownerID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, order.OrderNumber)
}
