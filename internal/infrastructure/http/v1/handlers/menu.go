package handlers

import (
	"github.com/gin-gonic/gin"

	"atlas/internal/domain/menus"
	"atlas/internal/infrastructure/http/v1/dto"
	"atlas/internal/infrastructure/http/v1/middleware"
)

// MenuHandler handles menu and permission tree endpoints.
type MenuHandler struct {
	*BaseHandler
	service *menus.Service
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(base *BaseHandler, service *menus.Service) *MenuHandler {
	return &MenuHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Tree handles GET /system/menus
func (h *MenuHandler) Tree(c *gin.Context) {
	forest, err := h.service.Tree(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, forest)
}

// List handles GET /system/menus/flat
func (h *MenuHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// Get handles GET /system/menus/:id
func (h *MenuHandler) Get(c *gin.Context) {
	menuID, ok := h.ParseID(c)
	if !ok {
		return
	}

	menu, err := h.service.Get(c.Request.Context(), menuID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, menu)
}

// Create handles POST /system/menus
func (h *MenuHandler) Create(c *gin.Context) {
	var req dto.CreateMenuRequest
	if !h.BindJSON(c, &req) {
		return
	}

	menuID, err := h.service.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, menuID)
}

// Update handles PUT /system/menus/:id
func (h *MenuHandler) Update(c *gin.Context) {
	menuID, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.UpdateMenuRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), menuID, req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, updated)
}

// Delete handles DELETE /system/menus/:id
func (h *MenuHandler) Delete(c *gin.Context) {
	menuID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), menuID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "menu deleted")
}

// RegisterRoutes registers menu routes with their permission guards.
func (h *MenuHandler) RegisterRoutes(g *gin.RouterGroup, authz middleware.Authorizer) {
	g.GET("/menus", middleware.RequirePermission(authz, "system:menu:list"), h.Tree)
	g.GET("/menus/flat", middleware.RequirePermission(authz, "system:menu:list"), h.List)
	g.GET("/menus/:id", middleware.RequirePermission(authz, "system:menu:read"), h.Get)
	g.POST("/menus", middleware.RequirePermission(authz, "system:menu:create"), h.Create)
	g.PUT("/menus/:id", middleware.RequirePermission(authz, "system:menu:update"), h.Update)
	g.DELETE("/menus/:id", middleware.RequirePermission(authz, "system:menu:delete"), h.Delete)
}
