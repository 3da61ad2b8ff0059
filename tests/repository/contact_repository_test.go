package repository_test

import (
	"context"
	"testing"

	"github.com/ovenledger/bakery-api/internal/domain"
	"github.com/ovenledger/bakery-api/internal/repository"
	"github.com/ovenledger/bakery-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestContactRepository_GetByEmail_CaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewContactRepository(db)
	ownerID := testutil.NewOwnerID()

	testutil.CreateTestContact(t, db, ownerID, "Jane", "Doe", "jane@example.com")

	found, err := repo.GetByEmail(context.Background(), ownerID, "JANE@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Jane", found.FirstName)

	_, err = repo.GetByEmail(context.Background(), ownerID, "nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestContactRepository_GetByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewContactRepository(db)
	ownerID := testutil.NewOwnerID()

	testutil.CreateTestContact(t, db, ownerID, "Jane", "Doe", "")

	found, err := repo.GetByName(context.Background(), ownerID, "jane", "doe")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", found.FullName())
}

func TestContactRepository_GetByEmail_ScopedToOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewContactRepository(db)

	ownerA := testutil.NewOwnerID()
	testutil.CreateTestContact(t, db, ownerA, "Jane", "Doe", "jane@example.com")

	_, err := repo.GetByEmail(context.Background(), testutil.NewOwnerID(), "jane@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestContactRepository_Search(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewContactRepository(db)
	ownerID := testutil.NewOwnerID()

	testutil.CreateTestContact(t, db, ownerID, "Jane", "Doe", "jane@example.com")
	testutil.CreateTestContact(t, db, ownerID, "John", "Smith", "john@example.com")

	results, err := repo.Search(context.Background(), ownerID, "doe", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Jane", results[0].FirstName)

	results, err = repo.Search(context.Background(), ownerID, "example.com", 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestContactRepository_DeleteAllForOwner_ClearsOrderReferences(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewContactRepository(db)
	ownerID := testutil.NewOwnerID()

	contact := testutil.CreateTestContact(t, db, ownerID, "Jane", "Doe", "jane@example.com")

	order := testutil.CreateTestOrder(t, db, ownerID, 1, domain.OrderStatusConfirmed, "100.00")
	require.NoError(t, db.Model(order).Update("contact_id", contact.ID).Error)

	deleted, err := repo.DeleteAllForOwner(context.Background(), ownerID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	var reloaded domain.Order
	require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
	assert.Nil(t, reloaded.ContactID)
}
