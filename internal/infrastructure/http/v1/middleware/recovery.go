// Package middleware provides HTTP middleware components.
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"atlas/internal/core/apperror"
	"atlas/internal/infrastructure/http/v1/dto"
	"atlas/pkg/logger"
)

// Recovery recovers from panics and returns a 500 envelope. The stack
// trace is logged but never exposed to the client. The response is
// written here directly because a panic unwinds past ErrorHandler.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error(c.Request.Context(), "panic recovered",
					"error", err,
					"stack", string(debug.Stack()),
				)

				_ = c.Error(apperror.NewInternal(fmt.Errorf("panic: %v", err)))

				if !c.Writer.Written() {
					c.JSON(http.StatusInternalServerError, dto.Fail(
						apperror.CodeInternal,
						"internal server error",
						map[string]any{"request_id": c.GetString("request_id")},
					))
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
