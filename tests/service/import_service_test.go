package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ovenledger/bakery-api/internal/config"
	"github.com/ovenledger/bakery-api/internal/domain"
	"github.com/ovenledger/bakery-api/internal/repository"
	"github.com/ovenledger/bakery-api/internal/service"
	"github.com/ovenledger/bakery-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newImportService(t *testing.T) (*service.ImportService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	svc := service.NewImportService(
		repository.NewContactRepository(db),
		repository.NewOrderRepository(db),
		repository.NewQuoteRepository(db),
		repository.NewExpenseRepository(db),
		repository.NewIncomeRepository(db),
		repository.NewIngredientRepository(db),
		repository.NewRecipeRepository(db),
		repository.NewTaskRepository(db),
		repository.NewEnquiryRepository(db),
		repository.NewSettingsRepository(db),
		repository.NewSequenceRepository(db),
		nil,
		config.ImportConfig{TempDir: t.TempDir(), MaxErrorDetails: 50},
		zap.NewNop(),
	)
	return svc, db
}

const expenseCSV = `Date,Description,Amount,Category,Supplier
2025-01-11,Flour,"$1,234.56",Ingredients,Mill Co
11 Jan 2025,Butter,45,Ingredients,Dairy Co
`

const ordersCSV = `Bake Diary Order Export
Order Number,Contact,Email,Event Type,Event Date,Status,Delivery,Discount,Setup Fee,Tax Rate,Total,Notes
101,Jane Doe,jane@example.com,Birthday,11 Jan 2025,Confirmed,Pickup,0,0,0,150.00,
102,Jane Doe,jane@example.com,Wedding,12 Feb 2025,Quote,Delivery,0,0,0,500.00,
Total,,,,,,,,,,650.00,
`

const orderItemsCSV = `Bake Diary Order Item Export
Order Number,Item Name,Quantity,Unit Price,Item Total
101,Chocolate cake,1,100.00,100.00
101,Cupcakes,12,3.50,42.00
999,Ghost item,1,1.00,1.00
`

func TestImportService_ImportFile_GenericExpenses(t *testing.T) {
	svc, db := newImportService(t)
	ownerID := testutil.NewOwnerID()

	sum, err := svc.ImportFile(context.Background(), ownerID, strings.NewReader(expenseCSV), "expenses.csv", domain.ImportOptions{})
	require.NoError(t, err)

	tally := sum.Summary["expenses"]
	assert.Equal(t, 2, tally.Imported)
	assert.Equal(t, 0, tally.Skipped)
	assert.Equal(t, 0, tally.Errors)

	var expenses []domain.Expense
	require.NoError(t, db.Where("owner_id = ?", ownerID).Order("description").Find(&expenses).Error)
	require.Len(t, expenses, 2)

	// Currency formatting is stripped and amounts carry two places.
	assert.Equal(t, "Butter", expenses[0].Description)
	assert.Equal(t, "45.00", expenses[0].Amount)
	assert.Equal(t, "Flour", expenses[1].Description)
	assert.Equal(t, "1234.56", expenses[1].Amount)

	require.NotNil(t, expenses[1].Date)
	assert.Equal(t, "2025-01-11", expenses[1].Date.Format("2006-01-02"))
}

func TestImportService_ImportFile_DeduplicatesByNaturalKey(t *testing.T) {
	svc, db := newImportService(t)
	ownerID := testutil.NewOwnerID()

	_, err := svc.ImportFile(context.Background(), ownerID, strings.NewReader(expenseCSV), "expenses.csv", domain.ImportOptions{})
	require.NoError(t, err)

	sum, err := svc.ImportFile(context.Background(), ownerID, strings.NewReader(expenseCSV), "expenses.csv", domain.ImportOptions{})
	require.NoError(t, err)

	tally := sum.Summary["expenses"]
	assert.Equal(t, 0, tally.Imported)
	assert.Equal(t, 2, tally.Skipped)

	var count int64
	require.NoError(t, db.Model(&domain.Expense{}).Where("owner_id = ?", ownerID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestImportService_ImportOrdersCSV_ResolvesSharedContactOnce(t *testing.T) {
	svc, db := newImportService(t)
	ownerID := testutil.NewOwnerID()

	sum, err := svc.ImportOrdersCSV(context.Background(), ownerID, ordersCSV, false)
	require.NoError(t, err)

	tally := sum.Summary["orders"]
	assert.Equal(t, 2, tally.Imported)
	// The vendor's trailing "Total" summary row is skipped, not imported.
	assert.Equal(t, 1, tally.Skipped)
	assert.Equal(t, 0, tally.Errors)

	var contacts []domain.Contact
	require.NoError(t, db.Where("owner_id = ?", ownerID).Find(&contacts).Error)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Jane", contacts[0].FirstName)
	assert.Equal(t, "Doe", contacts[0].LastName)
	assert.Equal(t, "jane@example.com", contacts[0].Email)

	var orders []domain.Order
	require.NoError(t, db.Where("owner_id = ?", ownerID).Order("order_number").Find(&orders).Error)
	require.Len(t, orders, 2)
	require.NotNil(t, orders[0].ContactID)
	require.NotNil(t, orders[1].ContactID)
	assert.Equal(t, *orders[0].ContactID, *orders[1].ContactID)
	assert.Equal(t, domain.OrderStatusConfirmed, orders[0].Status)
	assert.Equal(t, domain.EventTypeWedding, orders[1].EventType)
	assert.Equal(t, "500.00", orders[1].Total)
}

func TestImportService_ImportOrdersCSV_AdvancesOrderSequence(t *testing.T) {
	svc, db := newImportService(t)
	ownerID := testutil.NewOwnerID()

	_, err := svc.ImportOrdersCSV(context.Background(), ownerID, ordersCSV, false)
	require.NoError(t, err)

	next, err := repository.NewSequenceRepository(db).Next(context.Background(), ownerID, repository.SequenceKindOrder)
	require.NoError(t, err)
	assert.Equal(t, 103, next)
}

func TestImportService_ImportOrdersCSV_ReimportSkipsExistingNumbers(t *testing.T) {
	svc, db := newImportService(t)
	ownerID := testutil.NewOwnerID()

	_, err := svc.ImportOrdersCSV(context.Background(), ownerID, ordersCSV, false)
	require.NoError(t, err)

	sum, err := svc.ImportOrdersCSV(context.Background(), ownerID, ordersCSV, false)
	require.NoError(t, err)

	tally := sum.Summary["orders"]
	assert.Equal(t, 0, tally.Imported)
	assert.Equal(t, 3, tally.Skipped) // two duplicates plus the summary row

	var count int64
	require.NoError(t, db.Model(&domain.Order{}).Where("owner_id = ?", ownerID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestImportService_ImportOrdersCSV_ReplaceExistingIsIdempotent(t *testing.T) {
	svc, db := newImportService(t)
	ownerID := testutil.NewOwnerID()

	_, err := svc.ImportOrdersCSV(context.Background(), ownerID, ordersCSV, false)
	require.NoError(t, err)

	sum, err := svc.ImportOrdersCSV(context.Background(), ownerID, ordersCSV, true)
	require.NoError(t, err)

	tally := sum.Summary["orders"]
	assert.Equal(t, 2, tally.Imported)

	var count int64
	require.NoError(t, db.Model(&domain.Order{}).Where("owner_id = ?", ownerID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestImportService_ImportOrderItemsCSV_AttachesToExistingOrders(t *testing.T) {
	svc, db := newImportService(t)
	ownerID := testutil.NewOwnerID()

	_, err := svc.ImportOrdersCSV(context.Background(), ownerID, ordersCSV, false)
	require.NoError(t, err)

	sum, err := svc.ImportOrderItemsCSV(context.Background(), ownerID, orderItemsCSV)
	require.NoError(t, err)

	tally := sum.Summary["orderItems"]
	assert.Equal(t, 2, tally.Imported)
	assert.Equal(t, 1, tally.Errors) // order 999 does not exist
	require.NotEmpty(t, sum.Errors)
	assert.Contains(t, sum.Errors[0], "order 999 not found")

	order, err := repository.NewOrderRepository(db).GetByNumber(context.Background(), ownerID, 101)
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Chocolate cake", order.Items[0].Name)
	assert.Equal(t, "42.00", order.Items[1].LinePrice)
}

func TestImportService_ImportExpensesCSV_ReturnsCreatedEntries(t *testing.T) {
	svc, _ := newImportService(t)
	ownerID := testutil.NewOwnerID()

	created, sum, err := svc.ImportExpensesCSV(context.Background(), ownerID, expenseCSV, false)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Summary["expenses"].Imported)
	require.Len(t, created, 2)
	assert.Equal(t, "Flour", created[0].Description)
	assert.Equal(t, "1234.56", created[0].Amount)
}

func TestImportService_ImportFile_RejectsUnreadableContent(t *testing.T) {
	svc, _ := newImportService(t)
	ownerID := testutil.NewOwnerID()

	_, err := svc.ImportFile(context.Background(), ownerID, strings.NewReader(""), "empty.csv", domain.ImportOptions{})
	assert.ErrorIs(t, err, service.ErrImportFile)

	_, err = svc.ImportFile(context.Background(), ownerID, strings.NewReader("Date,Amount\n"), "headers-only.csv", domain.ImportOptions{})
	assert.ErrorIs(t, err, service.ErrImportFile)
}

func TestImportService_ImportFile_JSONDatasetUpload(t *testing.T) {
	svc, db := newImportService(t)
	ownerID := testutil.NewOwnerID()

	payload := `{
		"contacts": [
			{"firstName": "Jane", "lastName": "Doe", "email": "jane@example.com"}
		],
		"tasks": [
			{"title": "Bake sourdough"}
		]
	}`

	sum, err := svc.ImportFile(context.Background(), ownerID, strings.NewReader(payload), "backup.json",
		domain.ImportOptions{ImportContacts: true})
	require.NoError(t, err)

	// The upload goes through the structured importer with the same flags.
	assert.Equal(t, 1, sum.Summary["contacts"].Imported)
	assert.Equal(t, 0, sum.Summary["tasks"].Imported)

	var count int64
	require.NoError(t, db.Model(&domain.Contact{}).Where("owner_id = ?", ownerID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestImportService_ImportFile_MalformedJSONRejected(t *testing.T) {
	svc, _ := newImportService(t)
	ownerID := testutil.NewOwnerID()

	_, err := svc.ImportFile(context.Background(), ownerID, strings.NewReader("{not json"), "broken.json", domain.ImportOptions{})
	assert.ErrorIs(t, err, service.ErrImportFile)
}

func TestImportService_ImportJSON_FlagsGateEntityFamilies(t *testing.T) {
	svc, db := newImportService(t)
	ownerID := testutil.NewOwnerID()

	dataset := &domain.ImportDataset{
		Contacts: []domain.CreateContactRequest{
			{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"},
		},
		Tasks: []domain.CreateTaskRequest{
			{Title: "Bake sourdough"},
		},
		Expenses: []domain.CreateExpenseRequest{
			{Date: "2025-02-01", Description: "Oven repair", Amount: "220.50"},
		},
	}

	sum, err := svc.ImportJSON(context.Background(), ownerID, dataset, domain.ImportOptions{ImportContacts: true})
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Summary["contacts"].Imported)
	// Tasks are gated off; expenses always import.
	assert.Equal(t, 0, sum.Summary["tasks"].Imported)
	assert.Equal(t, 1, sum.Summary["expenses"].Imported)

	var taskCount int64
	require.NoError(t, db.Model(&domain.Task{}).Where("owner_id = ?", ownerID).Count(&taskCount).Error)
	assert.EqualValues(t, 0, taskCount)
}

func TestImportService_ImportJSON_OrdersWithoutNumberClaimSequence(t *testing.T) {
	svc, db := newImportService(t)
	ownerID := testutil.NewOwnerID()

	dataset := &domain.ImportDataset{
		Orders: []domain.ImportOrderRecord{
			{
				ContactName: "Jane Doe",
				EventType:   "birthday",
				Status:      "confirmed",
				Total:       "150.00",
				Items: []domain.OrderItemInput{
					{Name: "Cake", Quantity: "1", UnitPrice: "150.00", LinePrice: "150.00"},
				},
			},
		},
	}

	sum, err := svc.ImportJSON(context.Background(), ownerID, dataset, domain.ImportOptions{ImportOrders: true})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Summary["orders"].Imported)

	order, err := repository.NewOrderRepository(db).GetByNumber(context.Background(), ownerID, 1)
	require.NoError(t, err)
	assert.Equal(t, "150.00", order.Total)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Cake", order.Items[0].Name)
}
