package users

import (
	"context"

	"dario.cat/mergo"
	"github.com/samber/lo"

	appctx "atlas/internal/core/context"
	"atlas/internal/core/apperror"
	"atlas/internal/core/entity"
	"atlas/internal/core/id"
	"atlas/internal/core/tenant"
	"atlas/internal/core/tx"
	"atlas/internal/domain"
	"atlas/internal/domain/depts"
	"atlas/internal/domain/posts"
	"atlas/internal/domain/roles"
	"atlas/pkg/logger"
)

// Service provides user business logic.
type Service struct {
	repo     Repository
	deptRepo depts.Repository
	postRepo posts.Repository
	roleRepo roles.Repository
	txm      tx.Manager
}

// NewService creates a user service.
func NewService(repo Repository, deptRepo depts.Repository, postRepo posts.Repository, roleRepo roles.Repository, txm tx.Manager) *Service {
	return &Service{
		repo:     repo,
		deptRepo: deptRepo,
		postRepo: postRepo,
		roleRepo: roleRepo,
		txm:      txm,
	}
}

// Create adds a user with a hashed password and optional role assignments.
// The first supplied role becomes the ACTIVE one.
func (s *Service) Create(ctx context.Context, u *User, password string, roleIDs []id.ID) (id.ID, error) {
	if err := u.Validate(ctx); err != nil {
		return 0, err
	}
	if err := u.SetPassword(password); err != nil {
		return 0, err
	}
	u.Base = entity.NewBase(appctx.GetUsername(ctx))
	u.SetTenant(tenant.GetTenantID(ctx))

	var userID id.ID
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		userID, err = s.repo.Create(ctx, u)
		if err != nil {
			return err
		}
		if len(roleIDs) > 0 {
			return s.repo.ReplaceLinks(ctx, userID, roleIDs)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info(ctx, "user created", "user_id", userID, "username", u.Username)
	return userID, nil
}

// Get returns the bare user row.
func (s *Service) Get(ctx context.Context, userID id.ID) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

// Detail returns the user with department names, position label and
// assigned roles resolved.
func (s *Service) Detail(ctx context.Context, userID id.ID) (*Detail, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	d := &Detail{User: u, DeptNames: []string{}, Roles: []RoleBrief{}}

	if len(u.DeptIDs) > 0 {
		ds, err := s.deptRepo.GetByIDs(ctx, u.DeptIDs)
		if err != nil {
			return nil, err
		}
		d.DeptNames = lo.Map(ds, func(dp *depts.Dept, _ int) string { return dp.Name })
	}

	if u.PostID != nil {
		p, err := s.postRepo.GetByID(ctx, *u.PostID)
		if err == nil {
			d.Position = p.Name
		} else if !apperror.IsNotFound(err) {
			return nil, err
		}
	}

	links, err := s.repo.Links(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(links) > 0 {
		roleIDs := lo.Map(links, func(l *RoleLink, _ int) id.ID { return l.RoleID })
		rs, err := s.roleRepo.GetByIDs(ctx, roleIDs)
		if err != nil {
			return nil, err
		}
		byID := lo.KeyBy(rs, func(r *roles.Role) id.ID { return r.ID })
		for _, l := range links {
			r, ok := byID[l.RoleID]
			if !ok {
				continue // role soft-deleted since assignment
			}
			d.Roles = append(d.Roles, RoleBrief{ID: r.ID, Name: r.Name, Status: l.Status})
		}
	}

	return d, nil
}

// Page lists users with filters, resolving labels per row.
func (s *Service) Page(ctx context.Context, page domain.PageQuery, q PageQuery) (domain.PageResult[*Detail], error) {
	res, err := s.repo.Page(ctx, page, q)
	if err != nil {
		return domain.PageResult[*Detail]{}, err
	}

	details := make([]*Detail, 0, len(res.Items))
	for _, u := range res.Items {
		d, err := s.Detail(ctx, u.ID)
		if err != nil {
			return domain.PageResult[*Detail]{}, err
		}
		details = append(details, d)
	}

	return domain.PageResult[*Detail]{
		PageNum:  res.PageNum,
		PageSize: res.PageSize,
		Total:    res.Total,
		Items:    details,
	}, nil
}

// ListByDept returns users assigned to a department.
func (s *Service) ListByDept(ctx context.Context, deptID id.ID) ([]*User, error) {
	return s.repo.ListByDept(ctx, deptID)
}

// RemoveFromDept detaches a user from a department. Users not in the
// department are reported as NotFound.
func (s *Service) RemoveFromDept(ctx context.Context, deptID, userID id.ID) error {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !u.DeptIDs.Contains(deptID) {
		return apperror.NewNotFound("department membership", deptID)
	}

	u.DeptIDs = u.DeptIDs.Without(deptID)
	u.Touch(appctx.GetUsername(ctx))
	return s.repo.Update(ctx, u)
}

// Update patches user fields. A non-nil role set replaces all assignments,
// the first role becoming ACTIVE.
func (s *Service) Update(ctx context.Context, userID id.ID, patch *User, roleIDs []id.ID) (*User, error) {
	current, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	patch.Password = "" // password changes only via ResetPassword
	if err := mergo.Merge(current, patch, mergo.WithOverride); err != nil {
		return nil, apperror.NewInternal(err)
	}
	current.ID = userID
	current.Touch(appctx.GetUsername(ctx))

	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, current); err != nil {
			return err
		}
		if roleIDs != nil {
			return s.repo.ReplaceLinks(ctx, userID, roleIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return current, nil
}

// Delete soft-deletes a user. Repeated deletion reports NotFound.
func (s *Service) Delete(ctx context.Context, userID id.ID) error {
	return s.repo.SoftDelete(ctx, userID)
}

// SwitchRole moves the caller's ACTIVE mark to another assigned role.
//
// The lookup is scoped to the acting user, both states change in one
// transaction, and switching to the already-active role is a no-op.
func (s *Service) SwitchRole(ctx context.Context, userID, roleID id.ID) error {
	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.ActiveLink(ctx, userID)
		if err != nil {
			return err
		}
		if current.RoleID == roleID {
			return nil
		}

		target, err := s.repo.FindLink(ctx, userID, roleID)
		if err != nil {
			return err
		}

		if err := s.repo.SetLinkStatus(ctx, current.ID, LinkStatusNormal); err != nil {
			return err
		}
		return s.repo.SetLinkStatus(ctx, target.ID, LinkStatusActive)
	})
}

// ResetPassword replaces a user's password hash.
func (s *Service) ResetPassword(ctx context.Context, userID id.ID, newPassword string) error {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := u.SetPassword(newPassword); err != nil {
		return err
	}
	u.Touch(appctx.GetUsername(ctx))
	return s.repo.Update(ctx, u)
}

// UpdateStatus enables or disables an account.
func (s *Service) UpdateStatus(ctx context.Context, userID id.ID, status int) error {
	if status != entity.StatusNormal && status != entity.StatusDisabled {
		return apperror.NewValidation("invalid user status").WithDetail("status", status)
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	u.Status = status
	u.Touch(appctx.GetUsername(ctx))
	return s.repo.Update(ctx, u)
}
