// Package context provides request-scoped values extraction.
package context

import (
	"context"

	"atlas/internal/core/id"
)

// UserContext contains authenticated user information.
type UserContext struct {
	UserID      id.ID
	TenantID    id.ID
	Username    string
	Nickname    string
	IsSuperuser bool
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

// GetUserID returns user ID from context or zero.
func GetUserID(ctx context.Context) id.ID {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return 0
}

// GetUsername returns username from context or empty string.
func GetUsername(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.Username
	}
	return ""
}

// IsSuperuser reports whether the authenticated user bypasses permission checks.
func IsSuperuser(ctx context.Context) bool {
	if u := GetUser(ctx); u != nil {
		return u.IsSuperuser
	}
	return false
}
