package audit

import (
	"context"
	"time"

	"atlas/internal/domain"
)

// Repository defines audit log storage. The table is exempt from tenant
// and soft-delete scoping; tenant attribution is recorded explicitly on
// each entry.
type Repository interface {
	// Insert stores an entry, compressing large payloads.
	Insert(ctx context.Context, e *Entry) error

	// Page lists entries newest first, decompressing payloads.
	Page(ctx context.Context, page domain.PageQuery, q PageQuery) (domain.PageResult[*Entry], error)

	// DeleteBefore purges entries created before the cutoff.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
