package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactories_StatusCodes(t *testing.T) {
	cases := []struct {
		err    *AppError
		code   string
		status int
	}{
		{NewValidation("bad"), CodeValidation, http.StatusBadRequest},
		{NewNotFound("user", 1), CodeNotFound, http.StatusNotFound},
		{NewUnauthorized("no"), CodeUnauthorized, http.StatusUnauthorized},
		{NewForbidden("no"), CodeForbidden, http.StatusForbidden},
		{NewTenantDisabled(5), CodeTenantDisabled, http.StatusForbidden},
		{NewConflict("clash"), CodeConflict, http.StatusConflict},
		{NewDuplicate("user", "username", "alice"), CodeDuplicate, http.StatusConflict},
		{NewInternal(errors.New("boom")), CodeInternal, http.StatusInternalServerError},
		{NewDatabase(errors.New("boom")), CodeDatabase, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
		assert.Equal(t, tc.status, tc.err.HTTPStatus)
	}
}

func TestIsNotFound_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("load profile: %w", NewNotFound("user", 42))

	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestIsForbidden_CoversTenantDisabled(t *testing.T) {
	assert.True(t, IsForbidden(NewForbidden("no")))
	assert.True(t, IsForbidden(NewTenantDisabled(3)))
	assert.False(t, IsForbidden(NewUnauthorized("no")))
}

func TestWithDetailAndCause(t *testing.T) {
	cause := errors.New("db down")
	err := NewValidation("bad field").
		WithDetail("field", "email").
		WithCause(cause)

	assert.Equal(t, "email", err.Details["field"])
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "caused by")
}

func TestGetHTTPStatus_FallsBackTo500(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("plain")))
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(NewNotFound("role", 1)))
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(fmt.Errorf("wrap: %w", NewConflict("clash")))
	require.True(t, ok)
	assert.Equal(t, CodeConflict, appErr.Code)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}
