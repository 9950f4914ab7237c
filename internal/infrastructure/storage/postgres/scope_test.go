package postgres

import (
	"context"
	"testing"

	"github.com/Masterminds/squirrel"

	"atlas/internal/core/tenant"
)

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func TestApplyScope_NoTenant(t *testing.T) {
	q := builder().Select("id", "name").From("sys_dept")
	q = ApplyScope(context.Background(), "sys_dept", q)

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	want := "SELECT id, name FROM sys_dept WHERE deleted = $1"
	if sql != want {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", want, sql)
	}
	if len(args) != 1 || args[0] != 0 {
		t.Errorf("args mismatch: %v", args)
	}
}

func TestApplyScope_WithTenant(t *testing.T) {
	ctx := tenant.WithTenant(context.Background(), &tenant.Info{ID: 7, Status: tenant.StatusNormal})

	q := builder().Select("id").From("sys_user")
	q = ApplyScope(ctx, "sys_user", q)

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	want := "SELECT id FROM sys_user WHERE deleted = $1 AND tenant_id = $2"
	if sql != want {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", want, sql)
	}
	if len(args) != 2 || args[1] != int64(7) {
		t.Errorf("args mismatch: %v", args)
	}
}

func TestApplyScope_ComposesWithExistingWhere(t *testing.T) {
	ctx := tenant.WithTenant(context.Background(), &tenant.Info{ID: 3})

	q := builder().Select("id").From("sys_role").
		Where(squirrel.Eq{"status": 0})
	q = ApplyScope(ctx, "sys_role", q)

	sql, _, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	want := "SELECT id FROM sys_role WHERE status = $1 AND deleted = $2 AND tenant_id = $3"
	if sql != want {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", want, sql)
	}
}

func TestApplyScope_TenantRegistryNeverTenantFiltered(t *testing.T) {
	ctx := tenant.WithTenant(context.Background(), &tenant.Info{ID: 3})

	q := builder().Select("id").From("sys_tenant")
	q = ApplyScope(ctx, "sys_tenant", q)

	sql, _, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	want := "SELECT id FROM sys_tenant WHERE deleted = $1"
	if sql != want {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", want, sql)
	}
}

func TestApplyScope_AuditExempt(t *testing.T) {
	ctx := tenant.WithTenant(context.Background(), &tenant.Info{ID: 3})

	q := builder().Select("id").From("audit_log")
	q = ApplyScope(ctx, "audit_log", q)

	sql, _, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	want := "SELECT id FROM audit_log"
	if sql != want {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", want, sql)
	}
}

func TestApplyScopeUpdate_WithTenant(t *testing.T) {
	ctx := tenant.WithTenant(context.Background(), &tenant.Info{ID: 9})

	q := builder().Update("sys_post").
		Set("deleted", 1).
		Where(squirrel.Eq{"id": 5})
	q = ApplyScopeUpdate(ctx, "sys_post", q)

	sql, _, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	want := "UPDATE sys_post SET deleted = $1 WHERE id = $2 AND deleted = $3 AND tenant_id = $4"
	if sql != want {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", want, sql)
	}
}
