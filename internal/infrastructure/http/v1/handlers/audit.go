package handlers

import (
	"github.com/gin-gonic/gin"

	"atlas/internal/domain"
	"atlas/internal/domain/audit"
	"atlas/internal/infrastructure/http/v1/middleware"
)

// AuditHandler handles audit log endpoints.
type AuditHandler struct {
	*BaseHandler
	service *audit.Service
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, service *audit.Service) *AuditHandler {
	return &AuditHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Page handles GET /system/audit
func (h *AuditHandler) Page(c *gin.Context) {
	var page domain.PageQuery
	var q audit.PageQuery
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

// RegisterRoutes registers audit routes with their permission guards.
func (h *AuditHandler) RegisterRoutes(g *gin.RouterGroup, authz middleware.Authorizer) {
	g.GET("/audit", middleware.RequirePermission(authz, "system:audit:list"), h.Page)
}
