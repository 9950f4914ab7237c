package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"atlas/internal/core/apperror"
	appctx "atlas/internal/core/context"
	"atlas/internal/core/id"
	"atlas/internal/infrastructure/http/v1/dto"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds and validates JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, bindError("invalid request body", err))
		return false
	}
	return true
}

// BindQuery binds and validates query parameters.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Error(c, bindError("invalid query parameters", err))
		return false
	}
	return true
}

// bindError converts a binding failure into a validation error. Failed
// struct tags are reported per field so clients see which input was bad.
func bindError(msg string, err error) *apperror.AppError {
	appErr := apperror.NewValidation(msg)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = fe.Tag()
		}
		return appErr.WithDetail("fields", fields)
	}
	return appErr.WithDetail("error", err.Error())
}

// ParseID parses the :id path parameter.
func (h *BaseHandler) ParseID(c *gin.Context) (id.ID, bool) {
	raw := c.Param("id")
	parsed, err := id.Parse(raw)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id").WithDetail("value", raw))
		return 0, false
	}
	return parsed, true
}

// Error registers the error on the Gin context and aborts the request.
// The JSON envelope is produced by middleware.ErrorHandler, the single
// source of truth for error responses.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// GetUserID extracts user ID from request context.
func (h *BaseHandler) GetUserID(c *gin.Context) id.ID {
	return appctx.GetUserID(c.Request.Context())
}

// Created sends 201 with the new ID in the envelope.
func (h *BaseHandler) Created(c *gin.Context, newID id.ID) {
	c.JSON(http.StatusCreated, dto.OK(dto.IDResponse{ID: newID}))
}

// OK sends 200 with data in the envelope.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.OK(data))
}

// Success sends 200 with a message and no payload.
func (h *BaseHandler) Success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.OKMsg(message))
}
