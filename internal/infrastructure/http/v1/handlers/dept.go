package handlers

import (
	"github.com/gin-gonic/gin"

	"atlas/internal/core/apperror"
	"atlas/internal/core/id"
	"atlas/internal/domain/depts"
	"atlas/internal/domain/users"
	"atlas/internal/infrastructure/http/v1/dto"
	"atlas/internal/infrastructure/http/v1/middleware"
)

// DeptHandler handles department endpoints, including membership views.
type DeptHandler struct {
	*BaseHandler
	service *depts.Service
	userSvc *users.Service
}

// NewDeptHandler creates a new department handler.
func NewDeptHandler(base *BaseHandler, service *depts.Service, userSvc *users.Service) *DeptHandler {
	return &DeptHandler{
		BaseHandler: base,
		service:     service,
		userSvc:     userSvc,
	}
}

// Tree handles GET /system/depts. An optional ?id= narrows the result to
// one subtree.
func (h *DeptHandler) Tree(c *gin.Context) {
	var rootID id.ID
	if raw := c.Query("id"); raw != "" {
		parsed, err := id.Parse(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid id").WithDetail("value", raw))
			return
		}
		rootID = parsed
	}

	forest, err := h.service.Tree(c.Request.Context(), rootID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, forest)
}

// Get handles GET /system/depts/:id
func (h *DeptHandler) Get(c *gin.Context) {
	deptID, ok := h.ParseID(c)
	if !ok {
		return
	}

	dept, err := h.service.Get(c.Request.Context(), deptID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dept)
}

// Create handles POST /system/depts
func (h *DeptHandler) Create(c *gin.Context) {
	var req dto.CreateDeptRequest
	if !h.BindJSON(c, &req) {
		return
	}

	deptID, err := h.service.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, deptID)
}

// Update handles PUT /system/depts/:id
func (h *DeptHandler) Update(c *gin.Context) {
	deptID, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.UpdateDeptRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), deptID, req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, updated)
}

// Delete handles DELETE /system/depts/:id
func (h *DeptHandler) Delete(c *gin.Context) {
	deptID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), deptID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "department deleted")
}

// Import handles POST /system/depts/import
func (h *DeptHandler) Import(c *gin.Context) {
	var req dto.ImportDeptsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Import(c.Request.Context(), req.Depts)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// ListUsers handles GET /system/depts/:id/users
func (h *DeptHandler) ListUsers(c *gin.Context) {
	deptID, ok := h.ParseID(c)
	if !ok {
		return
	}

	members, err := h.userSvc.ListByDept(c.Request.Context(), deptID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, members)
}

// RemoveUser handles DELETE /system/depts/:id/users/:user_id
func (h *DeptHandler) RemoveUser(c *gin.Context) {
	deptID, ok := h.ParseID(c)
	if !ok {
		return
	}
	userID, err := id.Parse(c.Param("user_id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid user id").WithDetail("value", c.Param("user_id")))
		return
	}

	if err := h.userSvc.RemoveFromDept(c.Request.Context(), deptID, userID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "user removed from department")
}

// RegisterRoutes registers department routes with their permission guards.
func (h *DeptHandler) RegisterRoutes(g *gin.RouterGroup, authz middleware.Authorizer) {
	g.GET("/depts", middleware.RequirePermission(authz, "system:dept:list"), h.Tree)
	g.GET("/depts/:id", middleware.RequirePermission(authz, "system:dept:read"), h.Get)
	g.POST("/depts", middleware.RequirePermission(authz, "system:dept:create"), h.Create)
	g.PUT("/depts/:id", middleware.RequirePermission(authz, "system:dept:update"), h.Update)
	g.DELETE("/depts/:id", middleware.RequirePermission(authz, "system:dept:delete"), h.Delete)
	g.POST("/depts/import", middleware.RequirePermission(authz, "system:dept:create"), h.Import)
	g.GET("/depts/:id/users", middleware.RequirePermission(authz, "system:dept:read"), h.ListUsers)
	g.DELETE("/depts/:id/users/:user_id", middleware.RequirePermission(authz, "system:dept:update"), h.RemoveUser)
}
