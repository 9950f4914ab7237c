package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOK_Envelope(t *testing.T) {
	b, err := json.Marshal(OK(map[string]int{"count": 3}))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))

	assert.Equal(t, true, got["success"])
	assert.Equal(t, "OK", got["code"])
	assert.Equal(t, "success", got["msg"])
	assert.Equal(t, map[string]any{"count": float64(3)}, got["data"])
	_, hasErr := got["err"]
	assert.False(t, hasErr, "err is omitted on success")
}

func TestOKMsg_OmitsData(t *testing.T) {
	b, err := json.Marshal(OKMsg("status updated"))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))

	assert.Equal(t, "status updated", got["msg"])
	_, hasData := got["data"]
	assert.False(t, hasData)
}

func TestFail_Envelope(t *testing.T) {
	b, err := json.Marshal(Fail("NOT_FOUND", "user not found", map[string]any{"id": 9}))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))

	assert.Equal(t, false, got["success"])
	assert.Equal(t, "NOT_FOUND", got["code"])
	assert.Equal(t, "user not found", got["msg"])
	assert.Equal(t, map[string]any{"id": float64(9)}, got["err"])
}
