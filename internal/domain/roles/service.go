package roles

import (
	"context"

	"dario.cat/mergo"

	appctx "atlas/internal/core/context"
	"atlas/internal/core/apperror"
	"atlas/internal/core/entity"
	"atlas/internal/core/id"
	"atlas/internal/core/tenant"
	"atlas/internal/core/tx"
	"atlas/internal/domain"
)

// Service provides role business logic.
type Service struct {
	repo Repository
	txm  tx.Manager
}

// NewService creates a role service.
func NewService(repo Repository, txm tx.Manager) *Service {
	return &Service{repo: repo, txm: txm}
}

// Create adds a role and, when menu IDs are supplied, its permission grants.
func (s *Service) Create(ctx context.Context, r *Role, menuIDs []id.ID) (id.ID, error) {
	if err := r.Validate(ctx); err != nil {
		return 0, err
	}
	r.Base = entity.NewBase(appctx.GetUsername(ctx))
	r.SetTenant(tenant.GetTenantID(ctx))

	var roleID id.ID
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		roleID, err = s.repo.Create(ctx, r)
		if err != nil {
			return err
		}
		if len(menuIDs) > 0 {
			return s.repo.ReplaceMenus(ctx, roleID, menuIDs)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return roleID, nil
}

// Get returns a role by ID.
func (s *Service) Get(ctx context.Context, roleID id.ID) (*Role, error) {
	return s.repo.GetByID(ctx, roleID)
}

// List returns every live role.
func (s *Service) List(ctx context.Context) ([]*Role, error) {
	return s.repo.ListAll(ctx)
}

// Page lists roles with filters.
func (s *Service) Page(ctx context.Context, page domain.PageQuery, q PageQuery) (domain.PageResult[*Role], error) {
	return s.repo.Page(ctx, page, q)
}

// Update patches role fields and, when menu IDs are supplied, replaces
// the role's permission grants wholesale.
func (s *Service) Update(ctx context.Context, roleID id.ID, patch *Role, menuIDs []id.ID) (*Role, error) {
	current, err := s.repo.GetByID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	if err := mergo.Merge(current, patch, mergo.WithOverride); err != nil {
		return nil, apperror.NewInternal(err)
	}
	current.ID = roleID
	current.Touch(appctx.GetUsername(ctx))

	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, current); err != nil {
			return err
		}
		if menuIDs != nil {
			return s.repo.ReplaceMenus(ctx, roleID, menuIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return current, nil
}

// Delete soft-deletes a role. Repeated deletion reports NotFound.
func (s *Service) Delete(ctx context.Context, roleID id.ID) error {
	return s.repo.SoftDelete(ctx, roleID)
}

// MenuBundle returns the set of menu IDs granted to the role.
func (s *Service) MenuBundle(ctx context.Context, roleID id.ID) (*MenuBundle, error) {
	if _, err := s.repo.GetByID(ctx, roleID); err != nil {
		return nil, err
	}
	ids, err := s.repo.GetMenuIDs(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []id.ID{}
	}
	return &MenuBundle{MenuIDs: ids}, nil
}
