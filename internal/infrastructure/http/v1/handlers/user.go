package handlers

import (
	"github.com/gin-gonic/gin"

	"atlas/internal/domain"
	"atlas/internal/domain/users"
	"atlas/internal/infrastructure/http/v1/dto"
	"atlas/internal/infrastructure/http/v1/middleware"
)

// UserHandler handles user management endpoints.
type UserHandler struct {
	*BaseHandler
	service *users.Service
}

// NewUserHandler creates a new user handler.
func NewUserHandler(base *BaseHandler, service *users.Service) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Page handles GET /system/users
func (h *UserHandler) Page(c *gin.Context) {
	var page domain.PageQuery
	var q users.PageQuery
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

// Get handles GET /system/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	userID, ok := h.ParseID(c)
	if !ok {
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, detail)
}

// Create handles POST /system/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	userID, err := h.service.Create(c.Request.Context(), req.ToEntity(), req.Password, req.RoleIDs)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, userID)
}

// Update handles PUT /system/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), userID, req.ToPatch(), req.RoleIDs)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, updated)
}

// Delete handles DELETE /system/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "user deleted")
}

// UpdateStatus handles PUT /system/users/:id/status
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.StatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), userID, *req.Status); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "status updated")
}

// ResetPassword handles PUT /system/users/:id/password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	userID, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.ResetPasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), userID, req.Password); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "password reset")
}

// RegisterRoutes registers user routes with their permission guards.
func (h *UserHandler) RegisterRoutes(g *gin.RouterGroup, authz middleware.Authorizer) {
	g.GET("/users", middleware.RequirePermission(authz, "system:user:list"), h.Page)
	g.GET("/users/:id", middleware.RequirePermission(authz, "system:user:read"), h.Get)
	g.POST("/users", middleware.RequirePermission(authz, "system:user:create"), h.Create)
	g.PUT("/users/:id", middleware.RequirePermission(authz, "system:user:update"), h.Update)
	g.DELETE("/users/:id", middleware.RequirePermission(authz, "system:user:delete"), h.Delete)
	g.PUT("/users/:id/status", middleware.RequirePermission(authz, "system:user:update"), h.UpdateStatus)
	g.PUT("/users/:id/password", middleware.RequirePermission(authz, "system:user:update"), h.ResetPassword)
}
