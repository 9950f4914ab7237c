package system_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"atlas/internal/core/entity"
	"atlas/internal/core/id"
	"atlas/internal/domain/menus"
	"atlas/internal/domain/users"
	"atlas/internal/infrastructure/storage/postgres"
)

const menuTable = "sys_perm"

// MenuRepo implements menus.Repository.
type MenuRepo struct {
	*postgres.BaseRepo[*menus.Menu]
}

// NewMenuRepo creates a new menu repository.
func NewMenuRepo(txm *postgres.TxManager) *MenuRepo {
	return &MenuRepo{
		BaseRepo: postgres.NewBaseRepo(txm, menuTable, "menu", func() *menus.Menu {
			return &menus.Menu{}
		}),
	}
}

// GetByIDs retrieves the live menus among the given IDs.
func (r *MenuRepo) GetByIDs(ctx context.Context, ids []id.ID) ([]*menus.Menu, error) {
	if len(ids) == 0 {
		return []*menus.Menu{}, nil
	}
	return r.Select(ctx, r.ScopedSelect(ctx).
		Where(squirrel.Eq{"id": ids}).
		OrderBy("sort, id"))
}

// ListForUser returns the live menus reachable through the user's active
// role. The join carries the scoping predicates inline for every table
// it touches.
func (r *MenuRepo) ListForUser(ctx context.Context, userID id.ID) ([]*menus.Menu, error) {
	q := r.Builder().
		Select("DISTINCT m.*").
		From(menuTable + " m").
		Join("sys_role_perm rp ON rp.perm_id = m.id").
		Join("sys_role r ON r.id = rp.role_id").
		Join("sys_user_role ur ON ur.role_id = rp.role_id").
		Where(squirrel.Eq{
			"ur.user_id": userID,
			"ur.status":  users.LinkStatusActive,
			"r.status":   entity.StatusNormal,
			"r.deleted":  entity.NotDeleted,
			"m.status":   entity.StatusNormal,
			"m.deleted":  entity.NotDeleted,
		}).
		OrderBy("m.sort", "m.id")

	return r.Select(ctx, q)
}
