package dto

import (
	"atlas/internal/core/id"
	"atlas/internal/domain/depts"
)

// CreateDeptRequest for creating departments.
type CreateDeptRequest struct {
	Name   string `json:"name" binding:"required"`
	PID    id.ID  `json:"pid"`
	Leader string `json:"leader"`
	Phone  string `json:"phone"`
	Email  string `json:"email" binding:"omitempty,email"`
	Sort   int    `json:"sort"`
	Remark string `json:"remark"`
}

// ToEntity converts the request to a department row.
func (r *CreateDeptRequest) ToEntity() *depts.Dept {
	return &depts.Dept{
		Name:   r.Name,
		PID:    r.PID,
		Leader: r.Leader,
		Phone:  r.Phone,
		Email:  r.Email,
		Sort:   r.Sort,
		Remark: r.Remark,
	}
}

// UpdateDeptRequest patches department fields.
type UpdateDeptRequest struct {
	Name   string `json:"name"`
	PID    id.ID  `json:"pid"`
	Leader string `json:"leader"`
	Phone  string `json:"phone"`
	Email  string `json:"email" binding:"omitempty,email"`
	Sort   int    `json:"sort"`
	Remark string `json:"remark"`
}

// ToPatch converts the request to a merge patch.
func (r *UpdateDeptRequest) ToPatch() *depts.Dept {
	return &depts.Dept{
		Name:   r.Name,
		PID:    r.PID,
		Leader: r.Leader,
		Phone:  r.Phone,
		Email:  r.Email,
		Sort:   r.Sort,
		Remark: r.Remark,
	}
}

// ImportDeptsRequest carries a bulk department import payload.
type ImportDeptsRequest struct {
	Depts []depts.ImportRow `json:"depts" binding:"required,dive"`
}
