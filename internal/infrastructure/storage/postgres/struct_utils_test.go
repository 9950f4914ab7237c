package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"atlas/internal/core/entity"
	"atlas/internal/core/id"
)

type mockEntity struct {
	entity.Base
	Name     string `db:"name" json:"name"`
	Code     string `db:"code" json:"code"`
	Ignored  string `db:"-" json:"ignored"`
	Untagged string
}

func TestExtractDBColumns_IncludesEmbeddedBase(t *testing.T) {
	cols := ExtractDBColumns[mockEntity]()

	expected := []string{
		"id", "tenant_id", "create_by", "update_by", "create_time", "update_time", "deleted",
		"name", "code",
	}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
	assert.NotContains(t, cols, "-")
	assert.Len(t, cols, len(expected))
}

func TestStructToMap_FlattensBase(t *testing.T) {
	now := time.Now().UTC()
	tid := id.ID(7)
	e := mockEntity{
		Base: entity.Base{
			ID:         42,
			TenantID:   &tid,
			CreateBy:   "admin",
			UpdateBy:   "admin",
			CreateTime: now,
			UpdateTime: now,
			Deleted:    entity.NotDeleted,
		},
		Name:     "Engineering",
		Code:     "ENG",
		Ignored:  "skip me",
		Untagged: "skip me too",
	}

	m := StructToMap(e)

	assert.Equal(t, id.ID(42), m["id"])
	assert.Equal(t, &tid, m["tenant_id"])
	assert.Equal(t, "admin", m["create_by"])
	assert.Equal(t, now, m["create_time"])
	assert.Equal(t, entity.NotDeleted, m["deleted"])
	assert.Equal(t, "Engineering", m["name"])
	assert.Equal(t, "ENG", m["code"])

	_, hasIgnored := m["-"]
	assert.False(t, hasIgnored)
	assert.Len(t, m, 9)
}

func TestStructToMap_PointerInput(t *testing.T) {
	e := &mockEntity{Name: "Sales"}
	m := StructToMap(e)
	assert.Equal(t, "Sales", m["name"])
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
}
