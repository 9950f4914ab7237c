package posts

import (
	"context"

	"atlas/internal/core/id"
	"atlas/internal/domain"
)

// Repository defines post storage operations.
type Repository interface {
	domain.CrudRepository[*Post]

	Page(ctx context.Context, page domain.PageQuery, q PageQuery) (domain.PageResult[*Post], error)
	GetByIDs(ctx context.Context, ids []id.ID) ([]*Post, error)
}
