// Package system_repo provides PostgreSQL implementations for the system
// entity repositories. All repos share one TxManager wired at startup.
package system_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"atlas/internal/core/id"
	"atlas/internal/domain"
	"atlas/internal/domain/tenants"
	"atlas/internal/infrastructure/storage/postgres"
)

const tenantTable = "sys_tenant"

// TenantRepo implements tenants.Repository. The registry table is never
// tenant-scoped; only soft-delete filtering applies.
type TenantRepo struct {
	*postgres.BaseRepo[*tenants.Tenant]
}

// NewTenantRepo creates a new tenant repository.
func NewTenantRepo(txm *postgres.TxManager) *TenantRepo {
	return &TenantRepo{
		BaseRepo: postgres.NewBaseRepo(txm, tenantTable, "tenant", func() *tenants.Tenant {
			return &tenants.Tenant{}
		}),
	}
}

// Page lists tenants with filters.
func (r *TenantRepo) Page(ctx context.Context, page domain.PageQuery, q tenants.PageQuery) (domain.PageResult[*tenants.Tenant], error) {
	conds := postgres.CompactConds(
		postgres.ILikeCond("name", q.Name),
		postgres.ILikeCond("code", q.Code),
	)
	if q.Status != nil {
		conds = append(conds, squirrel.Eq{"status": *q.Status})
	}
	return r.BaseRepo.Page(ctx, page, conds, "id")
}

// GetByCode retrieves a tenant by its unique code.
func (r *TenantRepo) GetByCode(ctx context.Context, code string) (*tenants.Tenant, error) {
	return r.FindOne(ctx, r.ScopedSelect(ctx).
		Where(squirrel.Eq{"code": code}).
		Limit(1))
}

// GetByDomain retrieves a tenant by its bound domain.
func (r *TenantRepo) GetByDomain(ctx context.Context, domainName string) (*tenants.Tenant, error) {
	return r.FindOne(ctx, r.ScopedSelect(ctx).
		Where(squirrel.Eq{"domain": domainName}).
		Limit(1))
}

// UpdateStatus flips the tenant status without touching other columns.
func (r *TenantRepo) UpdateStatus(ctx context.Context, tenantID id.ID, status int, by string) error {
	t, err := r.GetByID(ctx, tenantID)
	if err != nil {
		return err
	}
	t.Status = status
	t.Touch(by)
	return r.Update(ctx, t)
}
