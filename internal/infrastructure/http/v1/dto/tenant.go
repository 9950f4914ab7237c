package dto

import (
	"atlas/internal/domain/tenants"
)

// CreateTenantRequest registers a tenant.
type CreateTenantRequest struct {
	Name   string `json:"name" binding:"required"`
	Code   string `json:"code" binding:"required"`
	Domain string `json:"domain"`
	Remark string `json:"remark"`
}

// ToEntity converts the request to a tenant row.
func (r *CreateTenantRequest) ToEntity() *tenants.Tenant {
	return &tenants.Tenant{
		Name:   r.Name,
		Code:   r.Code,
		Domain: r.Domain,
		Remark: r.Remark,
	}
}

// UpdateTenantRequest patches tenant fields.
type UpdateTenantRequest struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
	Remark string `json:"remark"`
}

// ToPatch converts the request to a merge patch. Code is immutable.
func (r *UpdateTenantRequest) ToPatch() *tenants.Tenant {
	return &tenants.Tenant{
		Name:   r.Name,
		Domain: r.Domain,
		Remark: r.Remark,
	}
}
