package repository_test

import (
	"context"
	"testing"

	"github.com/ovenledger/bakery-api/internal/repository"
	"github.com/ovenledger/bakery-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceRepository_Next_StartsAtOne(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSequenceRepository(db)
	ownerID := testutil.NewOwnerID()

	first, err := repo.Next(context.Background(), ownerID, repository.SequenceKindOrder)
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := repo.Next(context.Background(), ownerID, repository.SequenceKindOrder)
	require.NoError(t, err)
	assert.Equal(t, 2, second)
}

func TestSequenceRepository_Next_KindsAreIndependent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSequenceRepository(db)
	ownerID := testutil.NewOwnerID()

	orderNum, err := repo.Next(context.Background(), ownerID, repository.SequenceKindOrder)
	require.NoError(t, err)
	quoteNum, err := repo.Next(context.Background(), ownerID, repository.SequenceKindQuote)
	require.NoError(t, err)

	assert.Equal(t, 1, orderNum)
	assert.Equal(t, 1, quoteNum)
}

func TestSequenceRepository_Next_OwnersAreIndependent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSequenceRepository(db)

	ownerA := testutil.NewOwnerID()
	ownerB := testutil.NewOwnerID()

	_, err := repo.Next(context.Background(), ownerA, repository.SequenceKindOrder)
	require.NoError(t, err)

	num, err := repo.Next(context.Background(), ownerB, repository.SequenceKindOrder)
	require.NoError(t, err)
	assert.Equal(t, 1, num)
}

func TestSequenceRepository_Bump_RaisesSequence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSequenceRepository(db)
	ownerID := testutil.NewOwnerID()

	err := repo.Bump(context.Background(), ownerID, repository.SequenceKindOrder, 150)
	require.NoError(t, err)

	next, err := repo.Next(context.Background(), ownerID, repository.SequenceKindOrder)
	require.NoError(t, err)
	assert.Equal(t, 151, next)
}

func TestSequenceRepository_Bump_NeverLowers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSequenceRepository(db)
	ownerID := testutil.NewOwnerID()

	require.NoError(t, repo.Bump(context.Background(), ownerID, repository.SequenceKindOrder, 200))
	require.NoError(t, repo.Bump(context.Background(), ownerID, repository.SequenceKindOrder, 50))

	next, err := repo.Next(context.Background(), ownerID, repository.SequenceKindOrder)
	require.NoError(t, err)
	assert.Equal(t, 201, next)
}
