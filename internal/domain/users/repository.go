package users

import (
	"context"

	"atlas/internal/core/id"
	"atlas/internal/domain"
)

// Repository defines user storage operations.
type Repository interface {
	domain.CrudRepository[*User]

	Page(ctx context.Context, page domain.PageQuery, q PageQuery) (domain.PageResult[*User], error)
	ListByDept(ctx context.Context, deptID id.ID) ([]*User, error)

	// --- role links ---

	// Links returns all role assignments of a user.
	Links(ctx context.Context, userID id.ID) ([]*RoleLink, error)
	// ActiveLink returns the user's ACTIVE assignment, NotFound when the
	// user has none.
	ActiveLink(ctx context.Context, userID id.ID) (*RoleLink, error)
	// FindLink returns the assignment of a specific role, NotFound when
	// the role is not assigned.
	FindLink(ctx context.Context, userID, roleID id.ID) (*RoleLink, error)
	// SetLinkStatus updates a single link row.
	SetLinkStatus(ctx context.Context, linkID id.ID, status int) error
	// ReplaceLinks drops all assignments and inserts the given roles,
	// the first one ACTIVE, the rest NORMAL.
	ReplaceLinks(ctx context.Context, userID id.ID, roleIDs []id.ID) error
}
