package posts

import (
	"context"

	"dario.cat/mergo"

	appctx "atlas/internal/core/context"
	"atlas/internal/core/apperror"
	"atlas/internal/core/entity"
	"atlas/internal/core/id"
	"atlas/internal/core/tenant"
	"atlas/internal/domain"
)

// Service provides post business logic.
type Service struct {
	repo Repository
}

// NewService creates a post service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a post in the current tenant scope.
func (s *Service) Create(ctx context.Context, p *Post) (id.ID, error) {
	if err := p.Validate(ctx); err != nil {
		return 0, err
	}
	p.Base = entity.NewBase(appctx.GetUsername(ctx))
	p.SetTenant(tenant.GetTenantID(ctx))
	return s.repo.Create(ctx, p)
}

// Get returns a post by ID.
func (s *Service) Get(ctx context.Context, postID id.ID) (*Post, error) {
	return s.repo.GetByID(ctx, postID)
}

// List returns every live post.
func (s *Service) List(ctx context.Context) ([]*Post, error) {
	return s.repo.ListAll(ctx)
}

// Page lists posts with filters.
func (s *Service) Page(ctx context.Context, page domain.PageQuery, q PageQuery) (domain.PageResult[*Post], error) {
	return s.repo.Page(ctx, page, q)
}

// Update patches mutable post fields.
func (s *Service) Update(ctx context.Context, postID id.ID, patch *Post) (*Post, error) {
	current, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := mergo.Merge(current, patch, mergo.WithOverride); err != nil {
		return nil, apperror.NewInternal(err)
	}
	current.ID = postID
	current.Touch(appctx.GetUsername(ctx))

	if err := s.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// Delete soft-deletes a post. Repeated deletion reports NotFound.
func (s *Service) Delete(ctx context.Context, postID id.ID) error {
	return s.repo.SoftDelete(ctx, postID)
}
