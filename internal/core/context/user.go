// Package context provides request-scoped values extraction.
package context

import (
	"context"

	"ledgerpro/internal/core/id"
)

// UserContext contains authenticated user information.
type UserContext struct {
	UserID    id.ID
	Email     string
	SessionID id.ID
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID.String()
	}
	return ""
}
