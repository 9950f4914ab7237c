package system_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"atlas/internal/core/entity"
	"atlas/internal/core/id"
	"atlas/internal/domain"
	"atlas/internal/domain/roles"
	"atlas/internal/infrastructure/storage/postgres"
)

const (
	roleTable     = "sys_role"
	rolePermTable = "sys_role_perm"
)

// RoleRepo implements roles.Repository.
type RoleRepo struct {
	*postgres.BaseRepo[*roles.Role]
}

// NewRoleRepo creates a new role repository.
func NewRoleRepo(txm *postgres.TxManager) *RoleRepo {
	return &RoleRepo{
		BaseRepo: postgres.NewBaseRepo(txm, roleTable, "role", func() *roles.Role {
			return &roles.Role{}
		}),
	}
}

// Page lists roles with filters.
func (r *RoleRepo) Page(ctx context.Context, page domain.PageQuery, q roles.PageQuery) (domain.PageResult[*roles.Role], error) {
	conds := postgres.CompactConds(
		postgres.ILikeCond("name", q.Name),
	)
	if q.Status != nil {
		conds = append(conds, squirrel.Eq{"status": *q.Status})
	}
	return r.BaseRepo.Page(ctx, page, conds, "sort, id")
}

// GetByIDs retrieves the live roles among the given IDs.
func (r *RoleRepo) GetByIDs(ctx context.Context, ids []id.ID) ([]*roles.Role, error) {
	if len(ids) == 0 {
		return []*roles.Role{}, nil
	}
	return r.Select(ctx, r.ScopedSelect(ctx).
		Where(squirrel.Eq{"id": ids}).
		OrderBy("sort, id"))
}

// GetMenuIDs returns the IDs of live menus granted to the role.
func (r *RoleRepo) GetMenuIDs(ctx context.Context, roleID id.ID) ([]id.ID, error) {
	q := r.Builder().
		Select("rp.perm_id").
		From(rolePermTable + " rp").
		Join(menuTable + " m ON m.id = rp.perm_id").
		Where(squirrel.Eq{
			"rp.role_id": roleID,
			"m.deleted":  entity.NotDeleted,
		}).
		OrderBy("rp.perm_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.Querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query role menus: %w", err)
	}
	defer rows.Close()

	var ids []id.ID
	for rows.Next() {
		var menuID id.ID
		if err := rows.Scan(&menuID); err != nil {
			return nil, fmt.Errorf("scan menu id: %w", err)
		}
		ids = append(ids, menuID)
	}
	return ids, rows.Err()
}

// ReplaceMenus drops all grants of the role and inserts the given set.
func (r *RoleRepo) ReplaceMenus(ctx context.Context, roleID id.ID, menuIDs []id.ID) error {
	del := r.Builder().
		Delete(rolePermTable).
		Where(squirrel.Eq{"role_id": roleID})

	sql, args, err := del.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete role menus: %w", err)
	}

	if len(menuIDs) == 0 {
		return nil
	}

	ins := r.Builder().
		Insert(rolePermTable).
		Columns("role_id", "perm_id")
	for _, menuID := range menuIDs {
		ins = ins.Values(roleID, menuID)
	}

	sql, args, err = ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert role menus: %w", err)
	}
	return nil
}
