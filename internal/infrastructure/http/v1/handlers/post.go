package handlers

import (
	"github.com/gin-gonic/gin"

	"atlas/internal/domain"
	"atlas/internal/domain/posts"
	"atlas/internal/infrastructure/http/v1/dto"
	"atlas/internal/infrastructure/http/v1/middleware"
)

// PostHandler handles job position endpoints.
type PostHandler struct {
	*BaseHandler
	service *posts.Service
}

// NewPostHandler creates a new post handler.
func NewPostHandler(base *BaseHandler, service *posts.Service) *PostHandler {
	return &PostHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Page handles GET /system/posts
func (h *PostHandler) Page(c *gin.Context) {
	var page domain.PageQuery
	var q posts.PageQuery
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

// List handles GET /system/posts/all
func (h *PostHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// Get handles GET /system/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	postID, ok := h.ParseID(c)
	if !ok {
		return
	}

	post, err := h.service.Get(c.Request.Context(), postID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, post)
}

// Create handles POST /system/posts
func (h *PostHandler) Create(c *gin.Context) {
	var req dto.CreatePostRequest
	if !h.BindJSON(c, &req) {
		return
	}

	postID, err := h.service.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, postID)
}

// Update handles PUT /system/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	postID, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.UpdatePostRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), postID, req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, updated)
}

// Delete handles DELETE /system/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	postID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), postID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "post deleted")
}

// RegisterRoutes registers post routes with their permission guards.
func (h *PostHandler) RegisterRoutes(g *gin.RouterGroup, authz middleware.Authorizer) {
	g.GET("/posts", middleware.RequirePermission(authz, "system:post:list"), h.Page)
	g.GET("/posts/all", middleware.RequirePermission(authz, "system:post:list"), h.List)
	g.GET("/posts/:id", middleware.RequirePermission(authz, "system:post:read"), h.Get)
	g.POST("/posts", middleware.RequirePermission(authz, "system:post:create"), h.Create)
	g.PUT("/posts/:id", middleware.RequirePermission(authz, "system:post:update"), h.Update)
	g.DELETE("/posts/:id", middleware.RequirePermission(authz, "system:post:delete"), h.Delete)
}
