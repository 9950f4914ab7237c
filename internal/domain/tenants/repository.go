package tenants

import (
	"context"

	"atlas/internal/core/id"
	"atlas/internal/domain"
)

// Repository defines tenant registry storage operations.
type Repository interface {
	domain.CrudRepository[*Tenant]

	Page(ctx context.Context, page domain.PageQuery, q PageQuery) (domain.PageResult[*Tenant], error)
	GetByCode(ctx context.Context, code string) (*Tenant, error)
	GetByDomain(ctx context.Context, domainName string) (*Tenant, error)
	UpdateStatus(ctx context.Context, tenantID id.ID, status int, by string) error
}
