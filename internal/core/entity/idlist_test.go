package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlas/internal/core/id"
)

func TestIDList_ValueScanRoundTrip(t *testing.T) {
	in := IDList{3, 5, 8}

	v, err := in.Value()
	require.NoError(t, err)
	assert.Equal(t, "[3,5,8]", v)

	var out IDList
	require.NoError(t, out.Scan([]byte("[3,5,8]")))
	assert.Equal(t, in, out)
}

func TestIDList_NilValue(t *testing.T) {
	var l IDList
	v, err := l.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestIDList_ScanNull(t *testing.T) {
	l := IDList{1}
	require.NoError(t, l.Scan(nil))
	assert.Nil(t, l)
}

func TestIDList_ScanString(t *testing.T) {
	var l IDList
	require.NoError(t, l.Scan("[7]"))
	assert.Equal(t, IDList{7}, l)
}

func TestIDList_ContainsAndWithout(t *testing.T) {
	l := IDList{3, 5, 8}

	assert.True(t, l.Contains(5))
	assert.False(t, l.Contains(4))

	out := l.Without(5)
	assert.Equal(t, IDList{3, 8}, out)
	assert.Equal(t, IDList{3, 5, 8}, l, "Without must not mutate the receiver")

	assert.Equal(t, IDList{3, 5, 8}, l.Without(id.ID(99)))
}
