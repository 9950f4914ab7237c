// Package auth_repo provides PostgreSQL implementations for the auth
// repositories.
package auth_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"atlas/internal/core/entity"
	"atlas/internal/core/id"
	"atlas/internal/domain/users"
	"atlas/internal/infrastructure/storage/postgres"
)

// AuthRepo implements auth.Repository.
type AuthRepo struct {
	*postgres.BaseRepo[*users.User]
}

// NewAuthRepo creates a new auth repository.
func NewAuthRepo(txm *postgres.TxManager) *AuthRepo {
	return &AuthRepo{
		BaseRepo: postgres.NewBaseRepo(txm, "sys_user", "user", func() *users.User {
			return &users.User{}
		}),
	}
}

// GetUserByUsername retrieves a live user by username. The scoping filter
// narrows the lookup to the tenant in context.
func (r *AuthRepo) GetUserByUsername(ctx context.Context, username string) (*users.User, error) {
	return r.FindOne(ctx, r.ScopedSelect(ctx).
		Where(squirrel.Eq{"username": username}).
		Limit(1))
}

// HasPermission walks user -> role -> permission in one join. Links grant
// in NORMAL and ACTIVE states; disabled links, disabled or deleted roles
// and deleted permissions never grant.
func (r *AuthRepo) HasPermission(ctx context.Context, userID id.ID, identifier string) (bool, error) {
	q := r.Builder().
		Select("1").
		From("sys_user_role ur").
		Join("sys_role r ON r.id = ur.role_id").
		Join("sys_role_perm rp ON rp.role_id = ur.role_id").
		Join("sys_perm m ON m.id = rp.perm_id").
		Where(squirrel.Eq{
			"ur.user_id":   userID,
			"ur.status":    []int{users.LinkStatusNormal, users.LinkStatusActive},
			"r.status":     entity.StatusNormal,
			"r.deleted":    entity.NotDeleted,
			"m.status":     entity.StatusNormal,
			"m.deleted":    entity.NotDeleted,
			"m.identifier": identifier,
		}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check permission: %w", err)
	}
	return true, nil
}
