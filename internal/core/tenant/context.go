package tenant

import (
	"context"
	"errors"
)

type ctxKey int

const tenantKey ctxKey = iota

// ErrNoTenantInContext is returned when an operation requires a tenant but
// the request context carries none.
var ErrNoTenantInContext = errors.New("tenant not found in context")

// WithTenant stores the tenant snapshot in context.
func WithTenant(ctx context.Context, t *Info) context.Context {
	return context.WithValue(ctx, tenantKey, t)
}

// GetTenant retrieves the tenant snapshot from context, or nil.
func GetTenant(ctx context.Context) *Info {
	t, _ := ctx.Value(tenantKey).(*Info)
	return t
}

// GetTenantID returns the tenant ID or zero when the request is not
// tenant-scoped (system maintenance paths, login before resolution).
func GetTenantID(ctx context.Context) int64 {
	if t := GetTenant(ctx); t != nil {
		return t.ID
	}
	return 0
}
