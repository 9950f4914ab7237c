package postgres

import (
	"context"
	"strings"
	"testing"

	"atlas/internal/core/tenant"
	"atlas/internal/domain/audit"
)

func TestAuditPageSelect_TenantScoped(t *testing.T) {
	ctx := tenant.WithTenant(context.Background(), &tenant.Info{ID: 7, Status: tenant.StatusNormal})
	r := &AuditRepo{}

	sql, args, err := r.pageSelect(ctx, audit.PageQuery{}).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	if !strings.Contains(sql, "WHERE tenant_id = $1") {
		t.Errorf("missing tenant predicate: %s", sql)
	}
	if len(args) != 1 || args[0] != int64(7) {
		t.Errorf("args mismatch: %v", args)
	}
}

func TestAuditPageSelect_UnscopedWithoutTenant(t *testing.T) {
	r := &AuditRepo{}

	sql, args, err := r.pageSelect(context.Background(), audit.PageQuery{}).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	if strings.Contains(sql, "tenant_id =") {
		t.Errorf("unexpected tenant predicate: %s", sql)
	}
	if len(args) != 0 {
		t.Errorf("args mismatch: %v", args)
	}
}

func TestAuditPageSelect_TenantComposesWithFilters(t *testing.T) {
	ctx := tenant.WithTenant(context.Background(), &tenant.Info{ID: 3})
	r := &AuditRepo{}
	success := false

	sql, args, err := r.pageSelect(ctx, audit.PageQuery{
		Username: "alice",
		Success:  &success,
	}).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	for _, want := range []string{"tenant_id = $1", "username ILIKE $2", "success = $3"} {
		if !strings.Contains(sql, want) {
			t.Errorf("missing %q in: %s", want, sql)
		}
	}
	if len(args) != 3 || args[0] != int64(3) {
		t.Errorf("args mismatch: %v", args)
	}
}
