package handlers

import (
	"github.com/gin-gonic/gin"

	"atlas/internal/domain"
	"atlas/internal/domain/tenants"
	"atlas/internal/infrastructure/http/v1/dto"
	"atlas/internal/infrastructure/http/v1/middleware"
)

// TenantHandler handles tenant registry endpoints. These are platform
// routes; in practice only superusers reach them.
type TenantHandler struct {
	*BaseHandler
	service *tenants.Service
}

// NewTenantHandler creates a new tenant handler.
func NewTenantHandler(base *BaseHandler, service *tenants.Service) *TenantHandler {
	return &TenantHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Page handles GET /system/tenants
func (h *TenantHandler) Page(c *gin.Context) {
	var page domain.PageQuery
	var q tenants.PageQuery
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

// Get handles GET /system/tenants/:id
func (h *TenantHandler) Get(c *gin.Context) {
	tenantID, ok := h.ParseID(c)
	if !ok {
		return
	}

	t, err := h.service.Get(c.Request.Context(), tenantID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, t)
}

// Create handles POST /system/tenants
func (h *TenantHandler) Create(c *gin.Context) {
	var req dto.CreateTenantRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tenantID, err := h.service.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, tenantID)
}

// Update handles PUT /system/tenants/:id
func (h *TenantHandler) Update(c *gin.Context) {
	tenantID, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.UpdateTenantRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), tenantID, req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, updated)
}

// UpdateStatus handles PUT /system/tenants/:id/status
func (h *TenantHandler) UpdateStatus(c *gin.Context) {
	tenantID, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.StatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), tenantID, *req.Status); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "status updated")
}

// Delete handles DELETE /system/tenants/:id
func (h *TenantHandler) Delete(c *gin.Context) {
	tenantID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), tenantID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "tenant deleted")
}

// RegisterRoutes registers tenant routes with their permission guards.
func (h *TenantHandler) RegisterRoutes(g *gin.RouterGroup, authz middleware.Authorizer) {
	g.GET("/tenants", middleware.RequirePermission(authz, "system:tenant:list"), h.Page)
	g.GET("/tenants/:id", middleware.RequirePermission(authz, "system:tenant:read"), h.Get)
	g.POST("/tenants", middleware.RequirePermission(authz, "system:tenant:create"), h.Create)
	g.PUT("/tenants/:id", middleware.RequirePermission(authz, "system:tenant:update"), h.Update)
	g.PUT("/tenants/:id/status", middleware.RequirePermission(authz, "system:tenant:update"), h.UpdateStatus)
	g.DELETE("/tenants/:id", middleware.RequirePermission(authz, "system:tenant:delete"), h.Delete)
}
