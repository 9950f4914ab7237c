// Package users manages user accounts and their role assignments
// (sys_user, sys_user_role).
package users

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"atlas/internal/core/apperror"
	"atlas/internal/core/entity"
	"atlas/internal/core/id"
)

// Role link statuses (sys_user_role.status). Exactly one link per user is
// ACTIVE; it selects the acting role for the session.
const (
	LinkStatusNormal   = 0
	LinkStatusDisabled = 1
	LinkStatusActive   = 5
)

// User is an account row. Password stores the bcrypt hash and never
// leaves the service.
type User struct {
	entity.Base
	Username    string        `db:"username" json:"username"`
	Password    string        `db:"password" json:"-"`
	Nickname    string        `db:"nickname" json:"nickname,omitempty"`
	Email       string        `db:"email" json:"email,omitempty"`
	Phone       string        `db:"phone" json:"phone,omitempty"`
	Avatar      string        `db:"avatar" json:"avatar,omitempty"`
	DeptIDs     entity.IDList `db:"dept_ids" json:"dept_ids,omitempty"`
	PostID      *id.ID        `db:"post_id" json:"post_id,omitempty"`
	Status      int           `db:"status" json:"status"`
	IsSuperuser bool          `db:"is_superuser" json:"is_superuser"`
	Remark      string        `db:"remark" json:"remark,omitempty"`
}

// Validate checks entity invariants.
func (u *User) Validate(ctx context.Context) error {
	if u.Username == "" {
		return apperror.NewValidation("username is required").WithDetail("field", "username")
	}
	return nil
}

// CanLogin checks account state.
func (u *User) CanLogin() error {
	if u.Status != entity.StatusNormal {
		return apperror.NewForbidden("account is disabled")
	}
	return nil
}

// SetPassword hashes and stores a new password.
func (u *User) SetPassword(plain string) error {
	if len(plain) < 6 {
		return apperror.NewValidation("password must be at least 6 characters").WithDetail("field", "password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return apperror.NewInternal(err)
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// RoleLink is a user-role assignment row.
type RoleLink struct {
	ID     id.ID `db:"id" json:"id"`
	UserID id.ID `db:"user_id" json:"user_id"`
	RoleID id.ID `db:"role_id" json:"role_id"`
	Status int   `db:"status" json:"status"`
}

// IsActive reports whether this link selects the acting role.
func (l *RoleLink) IsActive() bool {
	return l.Status == LinkStatusActive
}

// Grants reports whether the link participates in permission resolution.
// Disabled links never grant; the active link is still an assignment.
func (l *RoleLink) Grants() bool {
	return l.Status == LinkStatusNormal || l.Status == LinkStatusActive
}

// RoleBrief is the role view attached to user details.
type RoleBrief struct {
	ID     id.ID  `json:"id"`
	Name   string `json:"name"`
	Status int    `json:"status"` // link status, not role status
}

// Detail is a user with resolved labels.
type Detail struct {
	*User
	DeptNames []string    `json:"dept_names"`
	Position  string      `json:"position,omitempty"`
	Roles     []RoleBrief `json:"roles"`
}

// PageQuery filters the user page listing.
type PageQuery struct {
	Username string `form:"username"`
	Nickname string `form:"nickname"`
	Status   *int   `form:"status"`
}
