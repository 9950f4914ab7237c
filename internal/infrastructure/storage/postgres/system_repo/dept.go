package system_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"atlas/internal/core/id"
	"atlas/internal/core/tenant"
	"atlas/internal/domain/depts"
	"atlas/internal/infrastructure/storage/postgres"
)

const deptTable = "sys_dept"

// DeptRepo implements depts.Repository.
type DeptRepo struct {
	*postgres.BaseRepo[*depts.Dept]
}

// NewDeptRepo creates a new department repository.
func NewDeptRepo(txm *postgres.TxManager) *DeptRepo {
	return &DeptRepo{
		BaseRepo: postgres.NewBaseRepo(txm, deptTable, "department", func() *depts.Dept {
			return &depts.Dept{}
		}),
	}
}

// GetByIDs retrieves the live departments among the given IDs.
func (r *DeptRepo) GetByIDs(ctx context.Context, ids []id.ID) ([]*depts.Dept, error) {
	if len(ids) == 0 {
		return []*depts.Dept{}, nil
	}
	return r.Select(ctx, r.ScopedSelect(ctx).
		Where(squirrel.Eq{"id": ids}).
		OrderBy("sort, id"))
}

// DeleteByRemarkTag hard-deletes rows whose remark contains the tag.
// Runs ahead of a re-import to drop the previous batch.
func (r *DeptRepo) DeleteByRemarkTag(ctx context.Context, tag string) error {
	q := r.Builder().
		Delete(deptTable).
		Where(squirrel.Like{"remark": "%" + tag + "%"})
	if tid := tenant.GetTenantID(ctx); tid != 0 {
		q = q.Where(squirrel.Eq{"tenant_id": tid})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete %s by remark: %w", deptTable, err)
	}
	return nil
}

// CreateWithID inserts a row keeping the caller-assigned ID so imported
// hierarchies preserve their source identifiers.
func (r *DeptRepo) CreateWithID(ctx context.Context, d *depts.Dept) error {
	data := postgres.StructToMap(d)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	q := r.Builder().
		Insert(deptTable).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", deptTable, err)
	}
	return nil
}

// UpdateParent rewires a department's position in the tree.
func (r *DeptRepo) UpdateParent(ctx context.Context, deptID, pid id.ID, level int) error {
	q := postgres.ApplyScopeUpdate(ctx, deptTable, r.Builder().
		Update(deptTable).
		Set("pid", pid).
		Set("level", level).
		Where(squirrel.Eq{"id": deptID}))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("update %s parent: %w", deptTable, err)
	}
	return nil
}
