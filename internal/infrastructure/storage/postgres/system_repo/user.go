package system_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"atlas/internal/core/apperror"
	"atlas/internal/core/id"
	"atlas/internal/domain"
	"atlas/internal/domain/users"
	"atlas/internal/infrastructure/storage/postgres"
)

const (
	userTable     = "sys_user"
	userRoleTable = "sys_user_role"
)

// UserRepo implements users.Repository, including the role link table.
type UserRepo struct {
	*postgres.BaseRepo[*users.User]
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{
		BaseRepo: postgres.NewBaseRepo(txm, userTable, "user", func() *users.User {
			return &users.User{}
		}),
	}
}

// Page lists users with filters.
func (r *UserRepo) Page(ctx context.Context, page domain.PageQuery, q users.PageQuery) (domain.PageResult[*users.User], error) {
	conds := postgres.CompactConds(
		postgres.ILikeCond("username", q.Username),
		postgres.ILikeCond("nickname", q.Nickname),
	)
	if q.Status != nil {
		conds = append(conds, squirrel.Eq{"status": *q.Status})
	}
	return r.BaseRepo.Page(ctx, page, conds, "id")
}

// ListByDept returns users whose dept_ids JSONB array contains the
// department.
func (r *UserRepo) ListByDept(ctx context.Context, deptID id.ID) ([]*users.User, error) {
	return r.Select(ctx, r.ScopedSelect(ctx).
		Where(squirrel.Expr("dept_ids @> ?::jsonb", fmt.Sprintf("[%d]", deptID))).
		OrderBy("id"))
}

// Links returns all role assignments of a user.
func (r *UserRepo) Links(ctx context.Context, userID id.ID) ([]*users.RoleLink, error) {
	q := r.Builder().
		Select("id", "user_id", "role_id", "status").
		From(userRoleTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var links []*users.RoleLink
	if err := pgxscan.Select(ctx, r.Querier(ctx), &links, sql, args...); err != nil {
		return nil, fmt.Errorf("select user links: %w", err)
	}
	return links, nil
}

// ActiveLink returns the user's ACTIVE assignment.
func (r *UserRepo) ActiveLink(ctx context.Context, userID id.ID) (*users.RoleLink, error) {
	return r.findLink(ctx, squirrel.Eq{
		"user_id": userID,
		"status":  users.LinkStatusActive,
	}, "active role assignment", userID)
}

// FindLink returns the assignment of a specific role.
func (r *UserRepo) FindLink(ctx context.Context, userID, roleID id.ID) (*users.RoleLink, error) {
	return r.findLink(ctx, squirrel.Eq{
		"user_id": userID,
		"role_id": roleID,
	}, "role assignment", roleID)
}

func (r *UserRepo) findLink(ctx context.Context, cond squirrel.Eq, what string, refID id.ID) (*users.RoleLink, error) {
	q := r.Builder().
		Select("id", "user_id", "role_id", "status").
		From(userRoleTable).
		Where(cond).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	link := &users.RoleLink{}
	if err := pgxscan.Get(ctx, r.Querier(ctx), link, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(what, refID)
		}
		return nil, fmt.Errorf("get user link: %w", err)
	}
	return link, nil
}

// SetLinkStatus updates a single link row.
func (r *UserRepo) SetLinkStatus(ctx context.Context, linkID id.ID, status int) error {
	q := r.Builder().
		Update(userRoleTable).
		Set("status", status).
		Where(squirrel.Eq{"id": linkID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update user link: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("role assignment", linkID)
	}
	return nil
}

// ReplaceLinks drops all assignments and inserts the given roles, the
// first one ACTIVE, the rest NORMAL.
func (r *UserRepo) ReplaceLinks(ctx context.Context, userID id.ID, roleIDs []id.ID) error {
	del := r.Builder().
		Delete(userRoleTable).
		Where(squirrel.Eq{"user_id": userID})

	sql, args, err := del.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete user links: %w", err)
	}

	if len(roleIDs) == 0 {
		return nil
	}

	ins := r.Builder().
		Insert(userRoleTable).
		Columns("user_id", "role_id", "status")
	for i, roleID := range roleIDs {
		status := users.LinkStatusNormal
		if i == 0 {
			status = users.LinkStatusActive
		}
		ins = ins.Values(userID, roleID, status)
	}

	sql, args, err = ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert user links: %w", err)
	}
	return nil
}
