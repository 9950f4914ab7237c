// Package tenants manages the tenant registry.
package tenants

import (
	"context"

	"atlas/internal/core/apperror"
	"atlas/internal/core/entity"
	"atlas/internal/core/tenant"
)

// Tenant is a registry row (sys_tenant). The registry itself is never
// tenant-filtered; rows are still soft-deleted.
type Tenant struct {
	entity.Base
	Name   string `db:"name" json:"name"`
	Code   string `db:"code" json:"code"`
	Domain string `db:"domain" json:"domain,omitempty"`
	Status int    `db:"status" json:"status"`
	Remark string `db:"remark" json:"remark,omitempty"`
}

// Validate checks entity invariants.
func (t *Tenant) Validate(ctx context.Context) error {
	if t.Name == "" {
		return apperror.NewValidation("tenant name is required").WithDetail("field", "name")
	}
	if t.Code == "" {
		return apperror.NewValidation("tenant code is required").WithDetail("field", "code")
	}
	return nil
}

// IsActive reports whether the tenant accepts requests.
func (t *Tenant) IsActive() bool {
	return t.Status == tenant.StatusNormal
}

// Info converts the row to the context snapshot.
func (t *Tenant) Info() *tenant.Info {
	return &tenant.Info{
		ID:     t.ID.Int64(),
		Code:   t.Code,
		Name:   t.Name,
		Status: t.Status,
	}
}

// PageQuery filters the tenant page listing.
type PageQuery struct {
	Name   string `form:"name"`
	Code   string `form:"code"`
	Status *int   `form:"status"`
}
