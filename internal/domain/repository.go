// Package domain provides shared business logic types.
package domain

import (
	"context"

	"atlas/internal/core/id"
)

// --- Pagination ---

// PageQuery contains pagination parameters common to all list endpoints.
type PageQuery struct {
	PageNum  int `form:"page_num" json:"page_num" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" json:"page_size" binding:"omitempty,min=1,max=100"`
}

// Normalize applies defaults for missing values.
func (q *PageQuery) Normalize() {
	if q.PageNum < 1 {
		q.PageNum = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 10
	}
}

// Offset calculates the SQL offset.
func (q *PageQuery) Offset() int {
	return (q.PageNum - 1) * q.PageSize
}

// PageResult contains one page of items plus the unpaged total.
type PageResult[T any] struct {
	PageNum  int   `json:"page_num"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
	Items    []T   `json:"items"`
}

// EmptyPage returns a result page with no items.
// Used to short-circuit the fetch when the count query reports zero.
func EmptyPage[T any](q PageQuery) PageResult[T] {
	return PageResult[T]{
		PageNum:  q.PageNum,
		PageSize: q.PageSize,
		Total:    0,
		Items:    []T{},
	}
}

// --- Repository contract ---

// CrudRepository defines operations every system entity repository supports.
// Reads are tenant- and soft-delete-scoped by the storage layer.
type CrudRepository[T any] interface {
	Create(ctx context.Context, e T) (id.ID, error)
	GetByID(ctx context.Context, entityID id.ID) (T, error)
	Update(ctx context.Context, e T) error
	// SoftDelete marks the row deleted. A second call finds no live row
	// and returns NotFound.
	SoftDelete(ctx context.Context, entityID id.ID) error
	ListAll(ctx context.Context) ([]T, error)
}

// BulkImportResult summarises a partial-failure batch operation.
type BulkImportResult struct {
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors"`
}
