// Package menus manages the menu and permission tree (sys_perm).
package menus

import (
	"context"

	"atlas/internal/core/apperror"
	"atlas/internal/core/entity"
	"atlas/internal/core/id"
)

// Menu node types.
const (
	TypeDirectory = 0
	TypeMenu      = 1
	TypeButton    = 2
	TypeAPI       = 3
)

// Menu is a node in the permission tree. Leaf nodes carry the permission
// identifier checked by the authorization middleware ("system:user:list").
type Menu struct {
	entity.Base
	Name       string `db:"name" json:"name"`
	PID        id.ID  `db:"pid" json:"pid"`
	Type       int    `db:"type" json:"type"`
	Path       string `db:"path" json:"path,omitempty"`
	Component  string `db:"component" json:"component,omitempty"`
	Icon       string `db:"icon" json:"icon,omitempty"`
	Identifier string `db:"identifier" json:"identifier,omitempty"`
	API        string `db:"api" json:"api,omitempty"`
	Method     string `db:"method" json:"method,omitempty"`
	Sort       int    `db:"sort" json:"sort"`
	Status     int    `db:"status" json:"status"`
	Visible    bool   `db:"visible" json:"visible"`
	Remark     string `db:"remark" json:"remark,omitempty"`

	Children []*Menu `db:"-" json:"children,omitempty"`
}

// Tree node contract.

func (m *Menu) TreeID() int64       { return m.ID.Int64() }
func (m *Menu) TreeParentID() int64 { return m.PID.Int64() }
func (m *Menu) TreeSort() int       { return m.Sort }
func (m *Menu) AppendChild(c *Menu) { m.Children = append(m.Children, c) }

// Validate checks entity invariants.
func (m *Menu) Validate(ctx context.Context) error {
	if m.Name == "" {
		return apperror.NewValidation("menu name is required").WithDetail("field", "name")
	}
	if m.Type < TypeDirectory || m.Type > TypeAPI {
		return apperror.NewValidation("invalid menu type").WithDetail("type", m.Type)
	}
	if m.PID == m.ID && !m.ID.IsZero() {
		return apperror.NewValidation("menu cannot be its own parent").WithDetail("id", m.ID)
	}
	return nil
}
