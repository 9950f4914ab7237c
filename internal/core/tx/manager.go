// Package tx defines the transaction contract domain services depend on,
// keeping them free of storage imports.
package tx

import (
	"context"
)

// Manager runs functions inside a database transaction. The concrete
// implementation lives in infrastructure/storage/postgres.
type Manager interface {
	// RunInTransaction executes fn within a transaction, committing on
	// nil and rolling back on error. Nested calls join the transaction
	// already carried by ctx.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager extends Manager for query-only work.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction; writes fail.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
