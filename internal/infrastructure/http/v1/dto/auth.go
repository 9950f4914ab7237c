package dto

import (
	"atlas/internal/domain/auth"
	"atlas/internal/domain/users"
)

// RefreshRequest exchanges a refresh token for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LoginResponse carries the token pair and the authenticated account.
type LoginResponse struct {
	Tokens *auth.TokenPair `json:"tokens"`
	User   *users.User     `json:"user"`
}
