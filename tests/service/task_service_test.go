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
)

func newTaskService(t *testing.T) *service.TaskService {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return service.NewTaskService(repository.NewTaskRepository(db), zap.NewNop())
}

func TestTaskService_Complete_StampsCompletionTime(t *testing.T) {
	svc := newTaskService(t)
	ownerID := testutil.NewOwnerID()

	created, err := svc.Create(context.Background(), ownerID, &domain.CreateTaskRequest{
		Title:   "Order packaging",
		DueDate: "2025-06-01",
		Tags:    []string{"supplies", "urgent"},
	})
	require.NoError(t, err)
	assert.False(t, created.Completed)

	done, err := svc.Complete(context.Background(), ownerID, created.ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)

	// Completing again is a no-op and keeps the original stamp.
	again, err := svc.Complete(context.Background(), ownerID, created.ID)
	require.NoError(t, err)
	assert.True(t, again.Completed)
	assert.Equal(t, *done.CompletedAt, *again.CompletedAt)
}

func TestTaskService_List_FiltersCompleted(t *testing.T) {
	svc := newTaskService(t)
	ownerID := testutil.NewOwnerID()

	open, err := svc.Create(context.Background(), ownerID, &domain.CreateTaskRequest{Title: "Bake bread"})
	require.NoError(t, err)
	closed, err := svc.Create(context.Background(), ownerID, &domain.CreateTaskRequest{Title: "Clean mixer"})
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), ownerID, closed.ID)
	require.NoError(t, err)

	pending, err := svc.List(context.Background(), ownerID, false)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, open.ID, pending[0].ID)

	all, err := svc.List(context.Background(), ownerID, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTaskService_Update_ReopenClearsCompletionTime(t *testing.T) {
	svc := newTaskService(t)
	ownerID := testutil.NewOwnerID()

	created, err := svc.Create(context.Background(), ownerID, &domain.CreateTaskRequest{Title: "Stocktake"})
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), ownerID, created.ID)
	require.NoError(t, err)

	reopen := false
	updated, err := svc.Update(context.Background(), ownerID, created.ID, &domain.UpdateTaskRequest{
		Title:     "Stocktake",
		Completed: &reopen,
	})
	require.NoError(t, err)
	assert.False(t, updated.Completed)
	assert.Nil(t, updated.CompletedAt)
}
