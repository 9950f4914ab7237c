// Package roles manages roles and their permission grants (sys_role,
// sys_role_perm).
package roles

import (
	"context"

	"atlas/internal/core/apperror"
	"atlas/internal/core/entity"
	"atlas/internal/core/id"
)

// Role groups permission grants. Users reach permissions only through
// role assignments.
type Role struct {
	entity.Base
	Name   string `db:"name" json:"name"`
	Code   string `db:"code" json:"code,omitempty"`
	Sort   int    `db:"sort" json:"sort"`
	Status int    `db:"status" json:"status"`
	Remark string `db:"remark" json:"remark,omitempty"`
}

// Validate checks entity invariants.
func (r *Role) Validate(ctx context.Context) error {
	if r.Name == "" {
		return apperror.NewValidation("role name is required").WithDetail("field", "name")
	}
	return nil
}

// IsActive reports whether the role currently grants anything.
func (r *Role) IsActive() bool {
	return r.Status == entity.StatusNormal && !r.IsDeleted()
}

// PageQuery filters the role page listing.
type PageQuery struct {
	Name   string `form:"name"`
	Status *int   `form:"status"`
}

// MenuBundle is the replace-all set of permission grants for a role.
type MenuBundle struct {
	MenuIDs []id.ID `json:"menu_ids"`
}
