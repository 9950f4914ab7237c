package tenants

import (
	"context"

	"dario.cat/mergo"

	appctx "atlas/internal/core/context"
	"atlas/internal/core/apperror"
	"atlas/internal/core/entity"
	"atlas/internal/core/id"
	"atlas/internal/core/tenant"
	"atlas/internal/domain"
	"atlas/pkg/logger"
)

// Service provides tenant registry business logic.
type Service struct {
	repo Repository
}

// NewService creates a tenant service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new tenant.
func (s *Service) Create(ctx context.Context, t *Tenant) (id.ID, error) {
	if err := t.Validate(ctx); err != nil {
		return 0, err
	}
	t.Base = entity.NewBase(appctx.GetUsername(ctx))

	newID, err := s.repo.Create(ctx, t)
	if err != nil {
		return 0, err
	}

	logger.Info(ctx, "tenant created", "tenant_id", newID, "code", t.Code)
	return newID, nil
}

// Get returns a tenant by ID.
func (s *Service) Get(ctx context.Context, tenantID id.ID) (*Tenant, error) {
	return s.repo.GetByID(ctx, tenantID)
}

// GetByCode returns a tenant by its unique code.
func (s *Service) GetByCode(ctx context.Context, code string) (*Tenant, error) {
	return s.repo.GetByCode(ctx, code)
}

// GetByDomain returns a tenant by its bound domain.
func (s *Service) GetByDomain(ctx context.Context, domainName string) (*Tenant, error) {
	return s.repo.GetByDomain(ctx, domainName)
}

// Page lists tenants with filters.
func (s *Service) Page(ctx context.Context, page domain.PageQuery, q PageQuery) (domain.PageResult[*Tenant], error) {
	return s.repo.Page(ctx, page, q)
}

// Update patches mutable tenant fields. Zero-valued patch fields keep the
// stored value.
func (s *Service) Update(ctx context.Context, tenantID id.ID, patch *Tenant) (*Tenant, error) {
	current, err := s.repo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if err := mergo.Merge(current, patch, mergo.WithOverride); err != nil {
		return nil, apperror.NewInternal(err)
	}
	current.ID = tenantID
	current.Touch(appctx.GetUsername(ctx))

	if err := s.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// UpdateStatus enables or disables a tenant.
func (s *Service) UpdateStatus(ctx context.Context, tenantID id.ID, status int) error {
	if status != tenant.StatusNormal && status != tenant.StatusDisabled {
		return apperror.NewValidation("invalid tenant status").WithDetail("status", status)
	}
	return s.repo.UpdateStatus(ctx, tenantID, status, appctx.GetUsername(ctx))
}

// Delete soft-deletes a tenant. Repeated deletion reports NotFound.
func (s *Service) Delete(ctx context.Context, tenantID id.ID) error {
	return s.repo.SoftDelete(ctx, tenantID)
}

// Resolve loads the tenant snapshot for a request and rejects disabled
// tenants. Zero ID means the request is not tenant-scoped.
func (s *Service) Resolve(ctx context.Context, tenantID id.ID) (*tenant.Info, error) {
	if tenantID.IsZero() {
		return nil, nil
	}

	t, err := s.repo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !t.IsActive() {
		return nil, apperror.NewTenantDisabled(tenantID)
	}
	return t.Info(), nil
}
