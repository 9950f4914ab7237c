package dto

import (
	"atlas/internal/core/id"
	"atlas/internal/domain/menus"
)

// CreateMenuRequest for creating menu nodes.
type CreateMenuRequest struct {
	Name       string `json:"name" binding:"required"`
	PID        id.ID  `json:"pid"`
	Type       int    `json:"type" binding:"min=0,max=3"`
	Path       string `json:"path"`
	Component  string `json:"component"`
	Icon       string `json:"icon"`
	Identifier string `json:"identifier" binding:"omitempty,permcode"`
	API        string `json:"api"`
	Method     string `json:"method"`
	Sort       int    `json:"sort"`
	Visible    *bool  `json:"visible"`
	Remark     string `json:"remark"`
}

// ToEntity converts the request to a menu row. Visibility defaults to on.
func (r *CreateMenuRequest) ToEntity() *menus.Menu {
	visible := true
	if r.Visible != nil {
		visible = *r.Visible
	}
	return &menus.Menu{
		Name:       r.Name,
		PID:        r.PID,
		Type:       r.Type,
		Path:       r.Path,
		Component:  r.Component,
		Icon:       r.Icon,
		Identifier: r.Identifier,
		API:        r.API,
		Method:     r.Method,
		Sort:       r.Sort,
		Visible:    visible,
		Remark:     r.Remark,
	}
}

// UpdateMenuRequest patches menu fields.
type UpdateMenuRequest struct {
	Name       string `json:"name"`
	PID        id.ID  `json:"pid"`
	Type       int    `json:"type" binding:"min=0,max=3"`
	Path       string `json:"path"`
	Component  string `json:"component"`
	Icon       string `json:"icon"`
	Identifier string `json:"identifier" binding:"omitempty,permcode"`
	API        string `json:"api"`
	Method     string `json:"method"`
	Sort       int    `json:"sort"`
	Visible    *bool  `json:"visible"`
	Remark     string `json:"remark"`
}

// ToPatch converts the request to a merge patch.
func (r *UpdateMenuRequest) ToPatch() *menus.Menu {
	m := &menus.Menu{
		Name:       r.Name,
		PID:        r.PID,
		Type:       r.Type,
		Path:       r.Path,
		Component:  r.Component,
		Icon:       r.Icon,
		Identifier: r.Identifier,
		API:        r.API,
		Method:     r.Method,
		Sort:       r.Sort,
		Remark:     r.Remark,
	}
	if r.Visible != nil {
		m.Visible = *r.Visible
	}
	return m
}
