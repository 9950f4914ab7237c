// Package postgres provides PostgreSQL infrastructure components.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	appctx "atlas/internal/core/context"
	"atlas/internal/core/apperror"
	"atlas/internal/core/id"
	"atlas/internal/domain"
)

// BaseRepo provides common CRUD operations for system entities.
// Embed this in specific repositories.
//
// Every single-table read and write goes through the scoping filter:
// soft-deleted rows and rows of foreign tenants are invisible.
type BaseRepo[T any] struct {
	txm        *TxManager
	tableName  string
	entityName string
	selectCols []string
	newFn      func() T
}

// NewBaseRepo creates a new base repository.
func NewBaseRepo[T any](txm *TxManager, tableName, entityName string, newFn func() T) *BaseRepo[T] {
	return &BaseRepo[T]{
		txm:        txm,
		tableName:  tableName,
		entityName: entityName,
		selectCols: ExtractDBColumns[T](),
		newFn:      newFn,
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *BaseRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Querier returns the active transaction or the pool.
func (r *BaseRepo[T]) Querier(ctx context.Context) Querier {
	return r.txm.GetQuerier(ctx)
}

// Table returns the repository table name.
func (r *BaseRepo[T]) Table() string {
	return r.tableName
}

// ScopedSelect creates a SELECT with the scoping predicates applied.
func (r *BaseRepo[T]) ScopedSelect(ctx context.Context) squirrel.SelectBuilder {
	q := r.Builder().
		Select(r.selectCols...).
		From(r.tableName)
	return ApplyScope(ctx, r.tableName, q)
}

// Create inserts a new entity using its "db" tags and returns the
// database-assigned ID.
func (r *BaseRepo[T]) Create(ctx context.Context, e T) (id.ID, error) {
	data := StructToMap(e)
	if len(data) == 0 {
		return 0, fmt.Errorf("no db tags found in entity")
	}
	delete(data, "id") // assigned by the database

	q := r.Builder().
		Insert(r.tableName).
		SetMap(data).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	var newID id.ID
	if err := r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&newID); err != nil {
		if dup := asDuplicate(err, r.entityName); dup != nil {
			return 0, dup
		}
		return 0, fmt.Errorf("insert %s: %w", r.tableName, err)
	}

	return newID, nil
}

// GetByID retrieves a live entity visible to the current scope.
func (r *BaseRepo[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	entity := r.newFn()

	q := r.ScopedSelect(ctx).
		Where(squirrel.Eq{"id": entityID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.Querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.entityName, entityID)
		}
		return entity, fmt.Errorf("get %s by id: %w", r.tableName, err)
	}

	return entity, nil
}

// Update rewrites the mutable columns of an entity.
// Identity and creation metadata never change.
func (r *BaseRepo[T]) Update(ctx context.Context, e T) error {
	data := StructToMap(e)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	entityID, ok := data["id"]
	if !ok {
		return fmt.Errorf("entity has no 'id' field with db tag")
	}

	for _, immutable := range []string{"id", "tenant_id", "create_by", "create_time", "deleted"} {
		delete(data, immutable)
	}
	data["update_time"] = time.Now().UTC()

	q := ApplyScopeUpdate(ctx, r.tableName, r.Builder().
		Update(r.tableName).
		SetMap(data).
		Where(squirrel.Eq{"id": entityID}))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if dup := asDuplicate(err, r.entityName); dup != nil {
			return dup
		}
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.entityName, entityID)
	}

	return nil
}

// SoftDelete marks a row deleted. Already-deleted rows are invisible, so a
// repeated call reports NotFound instead of touching the row again.
func (r *BaseRepo[T]) SoftDelete(ctx context.Context, entityID id.ID) error {
	q := ApplyScopeUpdate(ctx, r.tableName, r.Builder().
		Update(r.tableName).
		Set("deleted", 1).
		Set("update_by", appctx.GetUsername(ctx)).
		Set("update_time", time.Now().UTC()).
		Where(squirrel.Eq{"id": entityID}))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build soft delete: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("soft delete %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.entityName, entityID)
	}

	return nil
}

// ListAll retrieves every live entity visible to the current scope.
func (r *BaseRepo[T]) ListAll(ctx context.Context) ([]T, error) {
	return r.Select(ctx, r.ScopedSelect(ctx).OrderBy("id"))
}

// Page retrieves one page of entities matching the extra conditions,
// counting the full match first. An empty count skips the fetch.
func (r *BaseRepo[T]) Page(ctx context.Context, page domain.PageQuery, conds []squirrel.Sqlizer, orderBy string) (domain.PageResult[T], error) {
	page.Normalize()

	q := r.ScopedSelect(ctx)
	for _, c := range conds {
		q = q.Where(c)
	}

	countQ := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return domain.PageResult[T]{}, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	if err := r.Querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return domain.PageResult[T]{}, fmt.Errorf("count %s: %w", r.tableName, err)
	}
	if total == 0 {
		return domain.EmptyPage[T](page), nil
	}

	if orderBy == "" {
		orderBy = "create_time DESC"
	}
	q = q.OrderBy(orderBy).
		Limit(uint64(page.PageSize)).
		Offset(uint64(page.Offset()))

	items, err := r.Select(ctx, q)
	if err != nil {
		return domain.PageResult[T]{}, err
	}

	return domain.PageResult[T]{
		PageNum:  page.PageNum,
		PageSize: page.PageSize,
		Total:    total,
		Items:    items,
	}, nil
}

// Select executes an arbitrary SELECT built on this repository's columns.
func (r *BaseRepo[T]) Select(ctx context.Context, q squirrel.SelectBuilder) ([]T, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []T
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", r.tableName, err)
	}
	return items, nil
}

// FindOne executes a SELECT and returns the single matching entity.
func (r *BaseRepo[T]) FindOne(ctx context.Context, q squirrel.SelectBuilder) (T, error) {
	entity := r.newFn()

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.Querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.entityName, "matching query")
		}
		return entity, fmt.Errorf("find one %s: %w", r.tableName, err)
	}

	return entity, nil
}

// Exists checks if a live entity is visible to the current scope.
func (r *BaseRepo[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	q := ApplyScope(ctx, r.tableName, r.Builder().
		Select("1").
		From(r.tableName)).
		Where(squirrel.Eq{"id": entityID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", r.tableName, err)
	}
	return true, nil
}

// ILikeCond builds a case-insensitive substring condition, or nil for empty input.
func ILikeCond(column, value string) squirrel.Sqlizer {
	if value == "" {
		return nil
	}
	return squirrel.ILike{column: "%" + value + "%"}
}

// CompactConds drops nil conditions.
func CompactConds(conds ...squirrel.Sqlizer) []squirrel.Sqlizer {
	out := make([]squirrel.Sqlizer, 0, len(conds))
	for _, c := range conds {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// asDuplicate maps a unique violation (23505) to an AppError.
func asDuplicate(err error, entityName string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperror.NewDuplicate(entityName, "unique field", pgErr.ConstraintName).WithCause(err)
	}
	return nil
}
