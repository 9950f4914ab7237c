package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageQuery_NormalizeDefaults(t *testing.T) {
	q := PageQuery{}
	q.Normalize()
	assert.Equal(t, 1, q.PageNum)
	assert.Equal(t, 10, q.PageSize)
}

func TestPageQuery_NormalizeKeepsValid(t *testing.T) {
	q := PageQuery{PageNum: 3, PageSize: 25}
	q.Normalize()
	assert.Equal(t, 3, q.PageNum)
	assert.Equal(t, 25, q.PageSize)
}

func TestPageQuery_Offset(t *testing.T) {
	q := PageQuery{PageNum: 1, PageSize: 10}
	assert.Equal(t, 0, q.Offset())

	q = PageQuery{PageNum: 4, PageSize: 20}
	assert.Equal(t, 60, q.Offset())
}

func TestEmptyPage(t *testing.T) {
	q := PageQuery{PageNum: 2, PageSize: 15}
	res := EmptyPage[string](q)

	assert.Equal(t, 2, res.PageNum)
	assert.Equal(t, 15, res.PageSize)
	assert.Zero(t, res.Total)
	assert.NotNil(t, res.Items, "items must marshal as [] not null")
	assert.Empty(t, res.Items)
}
