package handlers

import (
	"github.com/gin-gonic/gin"

	"atlas/internal/domain"
	"atlas/internal/domain/roles"
	"atlas/internal/infrastructure/http/v1/dto"
	"atlas/internal/infrastructure/http/v1/middleware"
)

// RoleHandler handles role management endpoints.
type RoleHandler struct {
	*BaseHandler
	service *roles.Service
}

// NewRoleHandler creates a new role handler.
func NewRoleHandler(base *BaseHandler, service *roles.Service) *RoleHandler {
	return &RoleHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Page handles GET /system/roles
func (h *RoleHandler) Page(c *gin.Context) {
	var page domain.PageQuery
	var q roles.PageQuery
	if !h.BindQuery(c, &page) || !h.BindQuery(c, &q) {
		return
	}

	result, err := h.service.Page(c.Request.Context(), page, q)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// List handles GET /system/roles/all
func (h *RoleHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// Get handles GET /system/roles/:id
func (h *RoleHandler) Get(c *gin.Context) {
	roleID, ok := h.ParseID(c)
	if !ok {
		return
	}

	role, err := h.service.Get(c.Request.Context(), roleID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, role)
}

// Create handles POST /system/roles
func (h *RoleHandler) Create(c *gin.Context) {
	var req dto.CreateRoleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	roleID, err := h.service.Create(c.Request.Context(), req.ToEntity(), req.MenuIDs)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, roleID)
}

// Update handles PUT /system/roles/:id
func (h *RoleHandler) Update(c *gin.Context) {
	roleID, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.UpdateRoleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), roleID, req.ToPatch(), req.MenuIDs)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, updated)
}

// Delete handles DELETE /system/roles/:id
func (h *RoleHandler) Delete(c *gin.Context) {
	roleID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), roleID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "role deleted")
}

// Menus handles GET /system/roles/:id/menus
func (h *RoleHandler) Menus(c *gin.Context) {
	roleID, ok := h.ParseID(c)
	if !ok {
		return
	}

	bundle, err := h.service.MenuBundle(c.Request.Context(), roleID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, bundle)
}

// RegisterRoutes registers role routes with their permission guards.
func (h *RoleHandler) RegisterRoutes(g *gin.RouterGroup, authz middleware.Authorizer) {
	g.GET("/roles", middleware.RequirePermission(authz, "system:role:list"), h.Page)
	g.GET("/roles/all", middleware.RequirePermission(authz, "system:role:list"), h.List)
	g.GET("/roles/:id", middleware.RequirePermission(authz, "system:role:read"), h.Get)
	g.POST("/roles", middleware.RequirePermission(authz, "system:role:create"), h.Create)
	g.PUT("/roles/:id", middleware.RequirePermission(authz, "system:role:update"), h.Update)
	g.DELETE("/roles/:id", middleware.RequirePermission(authz, "system:role:delete"), h.Delete)
	g.GET("/roles/:id/menus", middleware.RequirePermission(authz, "system:role:read"), h.Menus)
}
