package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"atlas/internal/core/id"
)

// IDList is a set of entity IDs stored as a JSONB array
// (sys_user.dept_ids). Implements sql Valuer/Scanner for pgx.
type IDList []id.ID

// Value implements driver.Valuer.
func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal id list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *IDList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported id list source: %T", src)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}

// Contains reports whether the list holds the given ID.
func (l IDList) Contains(v id.ID) bool {
	for _, e := range l {
		if e == v {
			return true
		}
	}
	return false
}

// Without returns a copy of the list with the given ID removed.
func (l IDList) Without(v id.ID) IDList {
	out := make(IDList, 0, len(l))
	for _, e := range l {
		if e != v {
			out = append(out, e)
		}
	}
	return out
}
