package dto

import (
	"atlas/internal/core/entity"
	"atlas/internal/core/id"
	"atlas/internal/domain/users"
)

// CreateUserRequest for creating users.
type CreateUserRequest struct {
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required,min=6"`
	Nickname string  `json:"nickname"`
	Email    string  `json:"email" binding:"omitempty,email"`
	Phone    string  `json:"phone"`
	Avatar   string  `json:"avatar"`
	DeptIDs  []id.ID `json:"dept_ids"`
	PostID   *id.ID  `json:"post_id"`
	Remark   string  `json:"remark"`
	RoleIDs  []id.ID `json:"role_ids"`
}

// ToEntity converts the request to a user row.
func (r *CreateUserRequest) ToEntity() *users.User {
	return &users.User{
		Username: r.Username,
		Nickname: r.Nickname,
		Email:    r.Email,
		Phone:    r.Phone,
		Avatar:   r.Avatar,
		DeptIDs:  entity.IDList(r.DeptIDs),
		PostID:   r.PostID,
		Remark:   r.Remark,
	}
}

// UpdateUserRequest patches user fields. Zero-valued fields keep the
// stored values; a non-nil role set replaces all assignments.
type UpdateUserRequest struct {
	Nickname string  `json:"nickname"`
	Email    string  `json:"email" binding:"omitempty,email"`
	Phone    string  `json:"phone"`
	Avatar   string  `json:"avatar"`
	DeptIDs  []id.ID `json:"dept_ids"`
	PostID   *id.ID  `json:"post_id"`
	Remark   string  `json:"remark"`
	RoleIDs  []id.ID `json:"role_ids"`
}

// ToPatch converts the request to a merge patch.
func (r *UpdateUserRequest) ToPatch() *users.User {
	return &users.User{
		Nickname: r.Nickname,
		Email:    r.Email,
		Phone:    r.Phone,
		Avatar:   r.Avatar,
		DeptIDs:  entity.IDList(r.DeptIDs),
		PostID:   r.PostID,
		Remark:   r.Remark,
	}
}

// ResetPasswordRequest replaces a user's password.
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// SwitchRoleRequest changes the caller's acting role.
type SwitchRoleRequest struct {
	RoleID id.ID `json:"role_id" binding:"required"`
}
