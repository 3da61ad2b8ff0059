package auth_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext_RoundTrip(t *testing.T) {
	user := &auth.UserContext{
		UserID:      uuid.New(),
		Email:       "baker@example.com",
		DisplayName: "Jane Baker",
	}

	ctx := auth.WithUserContext(context.Background(), user)

	got, ok := auth.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, user, got)
	assert.Equal(t, user.UserID, auth.OwnerID(ctx))
}

func TestOwnerID_Unauthenticated(t *testing.T) {
	assert.Equal(t, uuid.Nil, auth.OwnerID(context.Background()))

	_, ok := auth.FromContext(context.Background())
	assert.False(t, ok)
}

func TestMustFromContext_PanicsWithoutUser(t *testing.T) {
	assert.Panics(t, func() {
		auth.MustFromContext(context.Background())
	})
}
