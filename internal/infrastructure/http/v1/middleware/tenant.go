package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	appctx "atlas/internal/core/context"
	"atlas/internal/core/apperror"
	"atlas/internal/core/id"
	"atlas/internal/core/tenant"
)

// TenantHeader is the HTTP header for tenant identification on routes
// that run before authentication (login, register).
const TenantHeader = "X-Tenant-ID"

// TenantResolver resolves the active tenant for a request.
type TenantResolver interface {
	Resolve(ctx context.Context, tenantID id.ID) (*tenant.Info, error)
}

// Tenant middleware resolves the request's tenant and stores it in the
// context, where the storage scoping filter picks it up.
//
// An authenticated user's token tenant wins over the header. Requests
// with neither run unscoped: platform-level maintenance and superuser
// traffic see all tenants. Disabled tenants reject the request.
func Tenant(resolver TenantResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var tenantID id.ID
		if user := appctx.GetUser(ctx); user != nil {
			tenantID = user.TenantID
		}
		if tenantID.IsZero() {
			if raw := c.GetHeader(TenantHeader); raw != "" {
				parsed, err := id.Parse(raw)
				if err != nil {
					_ = c.Error(
						apperror.NewValidation("invalid tenant id").
							WithDetail("header", TenantHeader).
							WithDetail("value", raw),
					)
					c.Abort()
					return
				}
				tenantID = parsed
			}
		}

		if tenantID.IsZero() {
			c.Next()
			return
		}

		info, err := resolver.Resolve(ctx, tenantID)
		if err != nil {
			if apperror.IsNotFound(err) {
				err = apperror.NewNotFound("tenant", tenantID)
			}
			_ = c.Error(err)
			c.Abort()
			return
		}

		ctx = tenant.WithTenant(ctx, info)
		c.Request = c.Request.WithContext(ctx)
		c.Set("tenant_id", info.ID)

		c.Next()
	}
}
