// Package entity provides the shared row shape for system tables.
package entity

import (
	"context"
	"time"

	"atlas/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Soft-delete flag values (deleted column).
const (
	NotDeleted int16 = 0
	Deleted    int16 = 1
)

// Row status values shared by users, roles, menus, departments and posts.
const (
	StatusNormal   = 0
	StatusDisabled = 1
)

// Base contains the audit columns carried by every system table.
// TenantID is nullable: rows created outside a tenant scope (platform
// administration) have no owner and are visible to every scope.
type Base struct {
	ID         id.ID     `db:"id" json:"id"`
	TenantID   *id.ID    `db:"tenant_id" json:"tenant_id,omitempty"`
	CreateBy   string    `db:"create_by" json:"create_by,omitempty"`
	UpdateBy   string    `db:"update_by" json:"update_by,omitempty"`
	CreateTime time.Time `db:"create_time" json:"create_time"`
	UpdateTime time.Time `db:"update_time" json:"update_time"`
	Deleted    int16     `db:"deleted" json:"-"`
}

// NewBase stamps creation metadata. The ID is assigned by the database.
func NewBase(by string) Base {
	now := time.Now().UTC()
	return Base{
		CreateBy:   by,
		UpdateBy:   by,
		CreateTime: now,
		UpdateTime: now,
		Deleted:    NotDeleted,
	}
}

// Touch updates modification metadata.
func (b *Base) Touch(by string) {
	b.UpdateBy = by
	b.UpdateTime = time.Now().UTC()
}

// MarkDeleted sets the soft-delete flag.
func (b *Base) MarkDeleted() {
	b.Deleted = Deleted
}

// IsDeleted reports whether the row is soft-deleted.
func (b *Base) IsDeleted() bool {
	return b.Deleted == Deleted
}

// SetTenant assigns row ownership. Zero tenant leaves the row unowned.
func (b *Base) SetTenant(tenantID int64) {
	if tenantID == 0 {
		return
	}
	tid := id.ID(tenantID)
	b.TenantID = &tid
}
