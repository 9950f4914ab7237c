// Package depts manages the department hierarchy (sys_dept).
package depts

import (
	"context"

	"atlas/internal/core/apperror"
	"atlas/internal/core/entity"
	"atlas/internal/core/id"
)

// Dept is a node in the department tree. PID zero marks a root.
type Dept struct {
	entity.Base
	Name   string `db:"name" json:"name"`
	PID    id.ID  `db:"pid" json:"pid"`
	Level  int    `db:"level" json:"level"`
	Leader string `db:"leader" json:"leader,omitempty"`
	Phone  string `db:"phone" json:"phone,omitempty"`
	Email  string `db:"email" json:"email,omitempty"`
	Sort   int    `db:"sort" json:"sort"`
	Status int    `db:"status" json:"status"`
	Remark string `db:"remark" json:"remark,omitempty"`

	Children []*Dept `db:"-" json:"children,omitempty"`
}

// Tree node contract.

func (d *Dept) TreeID() int64       { return d.ID.Int64() }
func (d *Dept) TreeParentID() int64 { return d.PID.Int64() }
func (d *Dept) TreeSort() int       { return d.Sort }
func (d *Dept) AppendChild(c *Dept) { d.Children = append(d.Children, c) }

// Validate checks entity invariants.
func (d *Dept) Validate(ctx context.Context) error {
	if d.Name == "" {
		return apperror.NewValidation("department name is required").WithDetail("field", "name")
	}
	if d.PID == d.ID && !d.ID.IsZero() {
		return apperror.NewValidation("department cannot be its own parent").WithDetail("id", d.ID)
	}
	return nil
}

// ImportRow is one department record in a bulk import payload.
// IDs are the source system's identifiers; parent references are remapped
// after all rows are created.
type ImportRow struct {
	ID       int64  `json:"id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	ParentID int64  `json:"parentid"`
	Leader   string `json:"leader"`
}
