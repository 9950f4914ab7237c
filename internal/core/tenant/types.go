// Package tenant provides the request-scoped tenant identity used for
// row-level isolation. All tenant-owned tables carry a tenant_id column and
// queries are filtered by the value carried in context.
package tenant

// Status values for tenant lifecycle (sys_tenant.status).
const (
	StatusNormal   = 0
	StatusDisabled = 1
)

// Info is the tenant snapshot resolved once per request.
type Info struct {
	ID     int64
	Code   string
	Name   string
	Status int
}

// IsActive returns true if the tenant can accept requests.
func (t *Info) IsActive() bool {
	return t.Status == StatusNormal
}
