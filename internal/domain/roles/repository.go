package roles

import (
	"context"

	"atlas/internal/core/id"
	"atlas/internal/domain"
)

// Repository defines role storage operations.
type Repository interface {
	domain.CrudRepository[*Role]

	Page(ctx context.Context, page domain.PageQuery, q PageQuery) (domain.PageResult[*Role], error)
	GetByIDs(ctx context.Context, ids []id.ID) ([]*Role, error)

	// GetMenuIDs returns the IDs of live menus granted to the role.
	GetMenuIDs(ctx context.Context, roleID id.ID) ([]id.ID, error)
	// ReplaceMenus drops all grants of the role and inserts the given set.
	ReplaceMenus(ctx context.Context, roleID id.ID, menuIDs []id.ID) error
}
