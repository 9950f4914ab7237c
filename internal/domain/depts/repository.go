package depts

import (
	"context"

	"atlas/internal/core/id"
	"atlas/internal/domain"
)

// Repository defines department storage operations.
type Repository interface {
	domain.CrudRepository[*Dept]

	GetByIDs(ctx context.Context, ids []id.ID) ([]*Dept, error)
	// DeleteByRemarkTag hard-deletes rows whose remark contains the tag.
	// Used to replace a previous bulk import.
	DeleteByRemarkTag(ctx context.Context, tag string) error
	// CreateWithID inserts a row keeping the caller-assigned ID.
	CreateWithID(ctx context.Context, d *Dept) error
	UpdateParent(ctx context.Context, deptID, pid id.ID, level int) error
}
