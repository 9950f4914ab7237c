package menus

import (
	"context"

	"dario.cat/mergo"

	appctx "atlas/internal/core/context"
	"atlas/internal/core/apperror"
	"atlas/internal/core/entity"
	"atlas/internal/core/id"
	"atlas/internal/core/tenant"
	"atlas/internal/core/tree"
)

// Service provides menu business logic.
type Service struct {
	repo Repository
}

// NewService creates a menu service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a menu node.
func (s *Service) Create(ctx context.Context, m *Menu) (id.ID, error) {
	if err := m.Validate(ctx); err != nil {
		return 0, err
	}
	m.Base = entity.NewBase(appctx.GetUsername(ctx))
	m.SetTenant(tenant.GetTenantID(ctx))
	return s.repo.Create(ctx, m)
}

// Get returns a menu by ID.
func (s *Service) Get(ctx context.Context, menuID id.ID) (*Menu, error) {
	return s.repo.GetByID(ctx, menuID)
}

// List returns every live menu as a flat slice.
func (s *Service) List(ctx context.Context) ([]*Menu, error) {
	return s.repo.ListAll(ctx)
}

// Tree returns the full menu forest ordered by sort key.
func (s *Service) Tree(ctx context.Context) ([]*Menu, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return tree.Build(items), nil
}

// TreeForUser returns the menu forest visible to the user's active role.
func (s *Service) TreeForUser(ctx context.Context, userID id.ID) ([]*Menu, error) {
	items, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return tree.Build(items), nil
}

// Update patches mutable menu fields.
func (s *Service) Update(ctx context.Context, menuID id.ID, patch *Menu) (*Menu, error) {
	current, err := s.repo.GetByID(ctx, menuID)
	if err != nil {
		return nil, err
	}

	if err := mergo.Merge(current, patch, mergo.WithOverride); err != nil {
		return nil, apperror.NewInternal(err)
	}
	current.ID = menuID
	if err := current.Validate(ctx); err != nil {
		return nil, err
	}
	current.Touch(appctx.GetUsername(ctx))

	if err := s.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// Delete soft-deletes a menu node. Repeated deletion reports NotFound.
func (s *Service) Delete(ctx context.Context, menuID id.ID) error {
	return s.repo.SoftDelete(ctx, menuID)
}
