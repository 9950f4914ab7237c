package auth

import (
	"context"

	"atlas/internal/core/id"
	"atlas/internal/domain/users"
)

// Repository defines authentication-specific storage operations.
type Repository interface {
	// GetUserByUsername retrieves a live user by username. Tenant scoping
	// applies through the context.
	GetUserByUsername(ctx context.Context, username string) (*users.User, error)

	// HasPermission reports whether the user holds the permission
	// identifier through any granting role assignment. Disabled links,
	// disabled roles and deleted menus never grant.
	HasPermission(ctx context.Context, userID id.ID, identifier string) (bool, error)
}

// TokenRepository defines refresh token storage operations.
type TokenRepository interface {
	// SaveRefreshToken saves a refresh token.
	SaveRefreshToken(ctx context.Context, token *RefreshToken) error

	// GetRefreshToken retrieves refresh token by hash.
	GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshToken, error)

	// RevokeRefreshToken revokes a refresh token.
	RevokeRefreshToken(ctx context.Context, tokenID id.ID, reason string) error

	// RevokeAllUserTokens revokes all tokens for a user.
	RevokeAllUserTokens(ctx context.Context, userID id.ID, reason string) error

	// CleanupExpiredTokens removes expired tokens.
	CleanupExpiredTokens(ctx context.Context) (int, error)
}
