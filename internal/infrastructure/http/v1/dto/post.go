package dto

import (
	"atlas/internal/domain/posts"
)

// CreatePostRequest for creating job positions.
type CreatePostRequest struct {
	Name   string `json:"name" binding:"required"`
	Code   string `json:"code"`
	Sort   int    `json:"sort"`
	Remark string `json:"remark"`
}

// ToEntity converts the request to a post row.
func (r *CreatePostRequest) ToEntity() *posts.Post {
	return &posts.Post{
		Name:   r.Name,
		Code:   r.Code,
		Sort:   r.Sort,
		Remark: r.Remark,
	}
}

// UpdatePostRequest patches post fields.
type UpdatePostRequest struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Sort   int    `json:"sort"`
	Remark string `json:"remark"`
}

// ToPatch converts the request to a merge patch.
func (r *UpdatePostRequest) ToPatch() *posts.Post {
	return &posts.Post{
		Name:   r.Name,
		Code:   r.Code,
		Sort:   r.Sort,
		Remark: r.Remark,
	}
}
