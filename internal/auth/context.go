package auth

import (
	"context"

	"github.com/google/uuid"
)

// UserContext holds the authenticated owner's identity. Every
// owner-scoped query in the repositories filters by UserID.
type UserContext struct {
	UserID      uuid.UUID
	Email       string
	DisplayName string
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// MustFromContext extracts user context or panics
func MustFromContext(ctx context.Context) *UserContext {
	user, ok := FromContext(ctx)
	if !ok {
		panic("user context not found in context")
	}
	return user
}

// OwnerID returns the owner scope for the request, or uuid.Nil when the
// request is unauthenticated.
func OwnerID(ctx context.Context) uuid.UUID {
	if user, ok := FromContext(ctx); ok {
		return user.UserID
	}
	return uuid.Nil
}
