package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/ovenledger/bakery-api/internal/domain"
	"github.com/ovenledger/bakery-api/internal/repository"
	"github.com/ovenledger/bakery-api/internal/service"
	"github.com/ovenledger/bakery-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newReportService(t *testing.T) (*service.ReportService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := service.NewReportService(
		repository.NewOrderRepository(db),
		repository.NewExpenseRepository(db),
		repository.NewIncomeRepository(db),
		repository.NewEnquiryRepository(db),
		zap.NewNop(),
	)
	return svc, db
}

func TestReportService_Summary(t *testing.T) {
	svc, db := newReportService(t)
	ownerID := testutil.NewOwnerID()

	tomorrow := time.Now().UTC().AddDate(0, 0, 1)

	confirmed := &domain.Order{
		OwnerID:      ownerID,
		OrderNumber:  1,
		EventType:    domain.EventTypeBirthday,
		EventDate:    &tomorrow,
		Status:       domain.OrderStatusConfirmed,
		DeliveryType: domain.DeliveryTypePickup,
		Discount:     "0.00",
		SetupFee:     "0.00",
		TaxRate:      "0",
		Total:        "150.00",
	}
	require.NoError(t, db.Create(confirmed).Error)

	cancelled := &domain.Order{
		OwnerID:      ownerID,
		OrderNumber:  2,
		EventType:    domain.EventTypeWedding,
		EventDate:    &tomorrow,
		Status:       domain.OrderStatusCancelled,
		DeliveryType: domain.DeliveryTypePickup,
		Discount:     "0.00",
		SetupFee:     "0.00",
		TaxRate:      "0",
		Total:        "999.00",
	}
	require.NoError(t, db.Create(cancelled).Error)

	today := time.Now().UTC()
	require.NoError(t, db.Create(&domain.Expense{
		OwnerID: ownerID, Date: &today, Description: "Flour", Amount: "40.00",
	}).Error)
	require.NoError(t, db.Create(&domain.Income{
		OwnerID: ownerID, Date: &today, Description: "Market stall", Amount: "10.00",
	}).Error)
	require.NoError(t, db.Create(&domain.Enquiry{
		OwnerID: ownerID, Name: "Walk-in", Status: domain.EnquiryStatusNew,
	}).Error)

	from := time.Now().UTC().Add(-time.Hour)
	to := time.Now().UTC().Add(time.Hour)

	sum, err := svc.Summary(context.Background(), ownerID, from, to)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.TotalOrders)
	// Cancelled orders count toward volume but not revenue.
	assert.Equal(t, "150.00", sum.TotalRevenue)
	assert.Equal(t, "40.00", sum.TotalExpenses)
	assert.Equal(t, "10.00", sum.TotalIncome)
	assert.Equal(t, "120.00", sum.NetProfit)
	assert.Equal(t, 1, sum.OpenEnquiries)
	assert.Equal(t, 1, sum.UpcomingOrders)
}

func TestReportService_Summary_EmptyPeriod(t *testing.T) {
	svc, _ := newReportService(t)
	ownerID := testutil.NewOwnerID()

	from := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2020, time.February, 1, 0, 0, 0, 0, time.UTC)

	sum, err := svc.Summary(context.Background(), ownerID, from, to)
	require.NoError(t, err)

	assert.Equal(t, 0, sum.TotalOrders)
	assert.Equal(t, "0.00", sum.TotalRevenue)
	assert.Equal(t, "0.00", sum.NetProfit)
}

func TestReportService_Monthly_BucketsByCalendarMonth(t *testing.T) {
	svc, db := newReportService(t)
	ownerID := testutil.NewOwnerID()

	jan := testutil.DateOf(2025, time.January, 15)
	feb := testutil.DateOf(2025, time.February, 10)
	febIncome := testutil.DateOf(2025, time.February, 20)

	require.NoError(t, db.Create(&domain.Expense{
		OwnerID: ownerID, Date: jan, Description: "Mixer repair", Amount: "100.00",
	}).Error)
	require.NoError(t, db.Create(&domain.Expense{
		OwnerID: ownerID, Date: feb, Description: "Boxes", Amount: "50.00",
	}).Error)
	require.NoError(t, db.Create(&domain.Income{
		OwnerID: ownerID, Date: febIncome, Description: "Class fees", Amount: "80.00",
	}).Error)

	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	rows, err := svc.Monthly(context.Background(), ownerID, from, to)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2025-01", rows[0].Month)
	assert.Equal(t, "100.00", rows[0].Expenses)
	assert.Equal(t, "-100.00", rows[0].Net)

	assert.Equal(t, "2025-02", rows[1].Month)
	assert.Equal(t, "50.00", rows[1].Expenses)
	assert.Equal(t, "80.00", rows[1].Income)
	assert.Equal(t, "30.00", rows[1].Net)
}
