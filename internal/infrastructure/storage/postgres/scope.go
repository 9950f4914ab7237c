package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"

	"atlas/internal/core/tenant"
)

// ScopeMode controls which automatic predicates a table receives.
type ScopeMode int

const (
	// ScopeFull filters by deleted = 0 and, when the request carries a
	// tenant, tenant_id = <tenant>. This is the default for system tables.
	ScopeFull ScopeMode = iota

	// ScopeDeletedOnly filters by deleted = 0 but never by tenant.
	// Used for the tenant registry itself.
	ScopeDeletedOnly

	// ScopeNone disables automatic filtering. Used for append-only and
	// token tables that are addressed explicitly.
	ScopeNone
)

// tableScopes holds per-table overrides. Tables not listed get ScopeFull.
// Repositories issuing join queries bypass the hook entirely and carry
// their predicates inline.
var tableScopes = map[string]ScopeMode{
	"sys_tenant":        ScopeDeletedOnly,
	"audit_log":         ScopeNone,
	"sys_refresh_token": ScopeNone,
	"sys_user_role":     ScopeNone,
	"sys_role_perm":     ScopeNone,
}

// scopeModeFor returns the effective mode for a table.
func scopeModeFor(table string) ScopeMode {
	if m, ok := tableScopes[table]; ok {
		return m
	}
	return ScopeFull
}

// ScopeConds returns the predicates the scoping filter adds for a table.
// Conditions compose with existing WHERE clauses via AND. A request without
// a tenant in context (platform maintenance, login) sees all tenants.
func ScopeConds(ctx context.Context, table string) []squirrel.Sqlizer {
	mode := scopeModeFor(table)
	if mode == ScopeNone {
		return nil
	}

	conds := []squirrel.Sqlizer{squirrel.Eq{"deleted": 0}}
	if mode == ScopeFull {
		if tid := tenant.GetTenantID(ctx); tid != 0 {
			conds = append(conds, squirrel.Eq{"tenant_id": tid})
		}
	}
	return conds
}

// ApplyScope attaches the scoping predicates to a SELECT.
func ApplyScope(ctx context.Context, table string, q squirrel.SelectBuilder) squirrel.SelectBuilder {
	for _, c := range ScopeConds(ctx, table) {
		q = q.Where(c)
	}
	return q
}

// ApplyScopeUpdate attaches the scoping predicates to an UPDATE, so writes
// cannot touch soft-deleted rows or rows of another tenant.
func ApplyScopeUpdate(ctx context.Context, table string, q squirrel.UpdateBuilder) squirrel.UpdateBuilder {
	for _, c := range ScopeConds(ctx, table) {
		q = q.Where(c)
	}
	return q
}
