package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlas/internal/core/id"
)

func TestJWT_RoundTrip(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		Secret:         "test-secret",
		Issuer:         "atlas",
		AccessTokenTTL: time.Minute,
	})

	token, expiresAt, err := svc.GenerateAccessToken(42, 7, "alice", "Alice", false)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	user, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id.ID(42), user.UserID)
	assert.Equal(t, id.ID(7), user.TenantID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "Alice", user.Nickname)
	assert.False(t, user.IsSuperuser)
}

func TestJWT_SuperuserFlagSurvives(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	token, _, err := svc.GenerateAccessToken(1, 0, "admin", "", true)
	require.NoError(t, err)

	user, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, user.IsSuperuser)
	assert.True(t, user.TenantID.IsZero())
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))

	token, _, err := issuer.GenerateAccessToken(1, 0, "alice", "", false)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWT_ExpiredTokenRejected(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		Secret:         "test-secret",
		Issuer:         "atlas",
		AccessTokenTTL: -time.Minute,
	})

	token, _, err := svc.GenerateAccessToken(1, 0, "alice", "", false)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWT_GarbageRejected(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
