// Package posts manages job positions (sys_post).
package posts

import (
	"context"

	"atlas/internal/core/apperror"
	"atlas/internal/core/entity"
)

// Post is a job position assignable to users.
type Post struct {
	entity.Base
	Name   string `db:"name" json:"name"`
	Code   string `db:"code" json:"code,omitempty"`
	Sort   int    `db:"sort" json:"sort"`
	Status int    `db:"status" json:"status"`
	Remark string `db:"remark" json:"remark,omitempty"`
}

// Validate checks entity invariants.
func (p *Post) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("post name is required").WithDetail("field", "name")
	}
	return nil
}

// PageQuery filters the post page listing.
type PageQuery struct {
	Name   string `form:"name"`
	Status *int   `form:"status"`
}
