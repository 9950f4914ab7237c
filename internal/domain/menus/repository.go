package menus

import (
	"context"

	"atlas/internal/core/id"
	"atlas/internal/domain"
)

// Repository defines menu storage operations.
type Repository interface {
	domain.CrudRepository[*Menu]

	GetByIDs(ctx context.Context, ids []id.ID) ([]*Menu, error)
	// ListForUser returns the live menus reachable through the user's
	// active role. Join query; predicates are carried inline.
	ListForUser(ctx context.Context, userID id.ID) ([]*Menu, error)
}
