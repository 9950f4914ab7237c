package system_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"atlas/internal/core/id"
	"atlas/internal/domain"
	"atlas/internal/domain/posts"
	"atlas/internal/infrastructure/storage/postgres"
)

const postTable = "sys_post"

// PostRepo implements posts.Repository.
type PostRepo struct {
	*postgres.BaseRepo[*posts.Post]
}

// NewPostRepo creates a new post repository.
func NewPostRepo(txm *postgres.TxManager) *PostRepo {
	return &PostRepo{
		BaseRepo: postgres.NewBaseRepo(txm, postTable, "post", func() *posts.Post {
			return &posts.Post{}
		}),
	}
}

// Page lists posts with filters, ordered by sort weight.
func (r *PostRepo) Page(ctx context.Context, page domain.PageQuery, q posts.PageQuery) (domain.PageResult[*posts.Post], error) {
	conds := postgres.CompactConds(
		postgres.ILikeCond("name", q.Name),
	)
	if q.Status != nil {
		conds = append(conds, squirrel.Eq{"status": *q.Status})
	}
	return r.BaseRepo.Page(ctx, page, conds, "sort, id")
}

// GetByIDs retrieves the live posts among the given IDs.
func (r *PostRepo) GetByIDs(ctx context.Context, ids []id.ID) ([]*posts.Post, error) {
	if len(ids) == 0 {
		return []*posts.Post{}, nil
	}
	return r.Select(ctx, r.ScopedSelect(ctx).
		Where(squirrel.Eq{"id": ids}).
		OrderBy("sort, id"))
}
