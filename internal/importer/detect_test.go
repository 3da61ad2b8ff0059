package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectGeneric(t *testing.T) {
	content := "Date,Description,Category,Amount\n2025-01-01,Flour,Ingredients,$10.00\n"

	det, err := Detect(content)
	require.NoError(t, err)
	assert.Equal(t, FormatGeneric, det.Format)
	assert.Equal(t, 0, det.HeaderRow)
}

func TestDetectBakeDiaryOrders(t *testing.T) {
	content := "Bake Diary Order Export\n\nOrder Number,Contact,Email,Event Date,Status,Total\n101,Jane Doe,jane@example.com,11 Jan 2025,Confirmed,$150.00\n"

	det, err := Detect(content)
	require.NoError(t, err)
	assert.Equal(t, FormatBakeDiaryOrders, det.Format)
	assert.Equal(t, 2, det.HeaderRow)
}

func TestDetectBakeDiaryOrderItems(t *testing.T) {
	content := "Bake Diary\nOrder Number,Item,Quantity,Unit Price,Price\n101,Chocolate Cake,1,80.00,80.00\n"

	det, err := Detect(content)
	require.NoError(t, err)
	assert.Equal(t, FormatBakeDiaryOrderItems, det.Format)
	assert.Equal(t, 1, det.HeaderRow)
}

func TestDetectBakeDiaryContacts(t *testing.T) {
	content := "Bake Diary Contacts\nFirst Name,Last Name,Email,Phone\nJane,Doe,jane@example.com,555-0101\n"

	det, err := Detect(content)
	require.NoError(t, err)
	assert.Equal(t, FormatBakeDiaryContacts, det.Format)
	assert.Equal(t, 1, det.HeaderRow)
}

func TestDetectBakeDiaryExpenses(t *testing.T) {
	content := "Bake Diary Expenses\nDate,Expense,Category,Amount (Incl VAT),Supplier\n11 Jan 2025,Flour,Ingredients,$49.50,Acme Mills\n"

	det, err := Detect(content)
	require.NoError(t, err)
	assert.Equal(t, FormatBakeDiaryExpenses, det.Format)
	assert.Equal(t, 1, det.HeaderRow)
}

func TestDetectErrors(t *testing.T) {
	t.Run("empty file", func(t *testing.T) {
		_, err := Detect("")
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("generic file without data rows", func(t *testing.T) {
		_, err := Detect("Date,Amount\n")
		assert.Error(t, err)
	})

	t.Run("marker but headers missing", func(t *testing.T) {
		_, err := Detect("Bake Diary\nsome,unrelated,columns\n")
		assert.Error(t, err)
	})

	t.Run("marker with headers but no data", func(t *testing.T) {
		_, err := Detect("Bake Diary\nOrder Number,Contact,Total\n")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no data rows")
	})
}
