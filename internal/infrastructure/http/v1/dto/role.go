package dto

import (
	"atlas/internal/core/id"
	"atlas/internal/domain/roles"
)

// CreateRoleRequest for creating roles.
type CreateRoleRequest struct {
	Name    string  `json:"name" binding:"required"`
	Code    string  `json:"code"`
	Sort    int     `json:"sort"`
	Remark  string  `json:"remark"`
	MenuIDs []id.ID `json:"menu_ids"`
}

// ToEntity converts the request to a role row.
func (r *CreateRoleRequest) ToEntity() *roles.Role {
	return &roles.Role{
		Name:   r.Name,
		Code:   r.Code,
		Sort:   r.Sort,
		Remark: r.Remark,
	}
}

// UpdateRoleRequest patches role fields. A non-nil menu set replaces the
// role's grants wholesale.
type UpdateRoleRequest struct {
	Name    string  `json:"name"`
	Code    string  `json:"code"`
	Sort    int     `json:"sort"`
	Remark  string  `json:"remark"`
	MenuIDs []id.ID `json:"menu_ids"`
}

// ToPatch converts the request to a merge patch.
func (r *UpdateRoleRequest) ToPatch() *roles.Role {
	return &roles.Role{
		Name:   r.Name,
		Code:   r.Code,
		Sort:   r.Sort,
		Remark: r.Remark,
	}
}
