package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mappingToday = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

func TestMapRowsGenericExpense(t *testing.T) {
	headers := SplitLine("Date,Description,Category,Amount,Supplier,Payment Source,VAT,Total Inc Tax,Is Recurring,Tax Deductible")
	rows := [][]string{
		SplitLine(`"11 Jan 2025","Flour","Ingredients","$45.00","Acme Mills","Bank Transfer","$4.50","$49.50","No","Yes"`),
	}

	result, err := MapRows(FormatGeneric, headers, rows, mappingToday)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Zero(t, result.Skipped)
	assert.Empty(t, result.Warnings)

	rec := result.Records[0]
	assert.Equal(t, "2025-01-11", rec.String(FieldDate))
	assert.Equal(t, "Flour", rec.String(FieldDescription))
	assert.Equal(t, "Ingredients", rec.String(FieldCategory))
	assert.Equal(t, "45.00", rec.String(FieldAmount))
	assert.Equal(t, "Acme Mills", rec.String(FieldSupplier))
	assert.Equal(t, "Bank Transfer", rec.String(FieldPaymentSource))
	assert.Equal(t, "4.50", rec.String(FieldVATAmount))
	assert.Equal(t, "49.50", rec.String(FieldTotalIncTax))
	assert.False(t, rec.Bool(FieldIsRecurring))
	assert.True(t, rec.Bool(FieldTaxDeductible))
}

func TestMapRowsAmountColumnPrecedence(t *testing.T) {
	// "Amount (Incl VAT)" is the more specific source for amount and wins
	// when both columns carry a value.
	headers := SplitLine("Date,Amount,Amount (Incl VAT)")

	t.Run("specific column wins", func(t *testing.T) {
		result, err := MapRows(FormatGeneric, headers, [][]string{{"2025-01-01", "10.00", "11.00"}}, mappingToday)
		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Equal(t, "11.00", result.Records[0].String(FieldAmount))
	})

	t.Run("falls back when specific column is empty", func(t *testing.T) {
		result, err := MapRows(FormatGeneric, headers, [][]string{{"2025-01-01", "10.00", ""}}, mappingToday)
		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Equal(t, "10.00", result.Records[0].String(FieldAmount))
	})
}

func TestMapRowsTotalColumnPrecedence(t *testing.T) {
	// Same rule for the total pair: "Total Inc Tax" beats the bare
	// "Total" column when both carry a value.
	headers := SplitLine("Date,Amount,Total,Total Inc Tax")

	t.Run("specific column wins", func(t *testing.T) {
		result, err := MapRows(FormatGeneric, headers, [][]string{{"2025-01-01", "10.00", "12.00", "11.00"}}, mappingToday)
		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Equal(t, "11.00", result.Records[0].String(FieldTotalIncTax))
	})

	t.Run("falls back when specific column is empty", func(t *testing.T) {
		result, err := MapRows(FormatGeneric, headers, [][]string{{"2025-01-01", "10.00", "12.00", ""}}, mappingToday)
		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Equal(t, "12.00", result.Records[0].String(FieldTotalIncTax))
	})
}

func TestMapRowsSkipsBlankAndSummaryRows(t *testing.T) {
	headers := SplitLine("Order Number,Contact,Total")
	rows := [][]string{
		{"101", "Jane Doe", "$80.00"},
		{"", "", ""},
		{"Total", "", "$80.00"},
		{"102", "Sam Smith", "$45.00"},
	}

	result, err := MapRows(FormatBakeDiaryOrders, headers, rows, mappingToday)
	require.NoError(t, err)
	assert.Len(t, result.Records, 2)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, 101, result.Records[0].Int(FieldOrderNumber))
	assert.Equal(t, 102, result.Records[1].Int(FieldOrderNumber))
}

func TestMapRowsMissingColumnGetsDefault(t *testing.T) {
	headers := SplitLine("Date,Amount")
	rows := [][]string{{"2025-02-02", "12.00"}}

	result, err := MapRows(FormatGeneric, headers, rows, mappingToday)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	rec := result.Records[0]
	assert.Equal(t, "", rec.String(FieldSupplier))
	assert.Equal(t, "0", rec.String(FieldVATAmount))
	assert.False(t, rec.Bool(FieldIsRecurring))
}

func TestMapRowsUnparseableDateWarnsAndDefaults(t *testing.T) {
	headers := SplitLine("Date,Amount")
	rows := [][]string{{"whenever", "5.00"}}

	result, err := MapRows(FormatGeneric, headers, rows, mappingToday)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "2025-06-01", result.Records[0].String(FieldDate))

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, 1, result.Warnings[0].Row)
	assert.Equal(t, FieldDate, result.Warnings[0].Field)
	assert.Contains(t, result.Warnings[0].Message, "whenever")
}

func TestMapRowsMissingRequiredColumns(t *testing.T) {
	headers := SplitLine("Description,Supplier")

	_, err := MapRows(FormatGeneric, headers, [][]string{{"Flour", "Acme"}}, mappingToday)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
	assert.Contains(t, err.Error(), "amount")
	assert.Contains(t, err.Error(), "date")
}

func TestMapRowsOrderItems(t *testing.T) {
	headers := SplitLine("Order Number,Item,Quantity,Unit Price,Price")
	rows := [][]string{
		{"101", "Chocolate Cake", "2", "$40.00", "$80.00"},
	}

	result, err := MapRows(FormatBakeDiaryOrderItems, headers, rows, mappingToday)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	rec := result.Records[0]
	assert.Equal(t, 101, rec.Int(FieldOrderNumber))
	assert.Equal(t, "Chocolate Cake", rec.String(FieldItemName))
	assert.Equal(t, "2.00", rec.String(FieldQuantity))
	assert.Equal(t, "40.00", rec.String(FieldUnitPrice))
	assert.Equal(t, "80.00", rec.String(FieldLinePrice))
}
