package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Authorizer checks a permission identifier for the calling user.
type Authorizer interface {
	Authorize(ctx context.Context, identifier string) error
}

// RequirePermission guards a route with a static permission identifier.
// The check hits the grant tables on every request, so revoking a role
// or permission takes effect immediately. Superusers pass unconditionally.
func RequirePermission(authorizer Authorizer, identifier string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authorizer.Authorize(c.Request.Context(), identifier); err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAnyPermission passes when the user holds at least one of the
// identifiers.
func RequireAnyPermission(authorizer Authorizer, identifiers ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var lastErr error
		for _, identifier := range identifiers {
			if err := authorizer.Authorize(c.Request.Context(), identifier); err == nil {
				c.Next()
				return
			} else {
				lastErr = err
			}
		}
		_ = c.Error(lastErr)
		c.Abort()
	}
}
