// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"atlas/internal/domain/audit"
	"atlas/internal/domain/auth"
	"atlas/internal/domain/depts"
	"atlas/internal/domain/menus"
	"atlas/internal/domain/posts"
	"atlas/internal/domain/roles"
	"atlas/internal/domain/tenants"
	"atlas/internal/domain/users"
	"atlas/internal/infrastructure/http/v1/handlers"
	"atlas/internal/infrastructure/http/v1/middleware"
	"atlas/internal/infrastructure/storage/postgres"
	"atlas/pkg/logger"
)

// RouterConfig holds the wired services the router exposes.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	JWTValidator middleware.JWTValidator

	AuthService   *auth.Service
	UserService   *users.Service
	RoleService   *roles.Service
	MenuService   *menus.Service
	DeptService   *depts.Service
	PostService   *posts.Service
	TenantService *tenants.Service
	AuditService  *audit.Service

	// Mode sets the Gin mode ("debug", "release", "test").
	Mode string
}

// NewRouter creates and configures the Gin router.
//
// Middleware order matters: tenant resolution must follow auth so the
// token tenant wins, and both must precede the permission guards that
// hit tenant-scoped tables.
func NewRouter(cfg RouterConfig) *gin.Engine {
	mode := cfg.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth, no tenant required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()
	authz := cfg.AuthService

	apiV1 := router.Group("/api/v1")
	{
		// Public auth endpoints resolve the tenant from the header.
		publicAuth := apiV1.Group("/auth")
		publicAuth.Use(middleware.Tenant(cfg.TenantService))
		publicAuth.Use(middleware.Audit(cfg.AuditService))

		// Protected auth endpoints resolve it from the token.
		protectedAuth := apiV1.Group("/auth")
		protectedAuth.Use(middleware.Auth(cfg.JWTValidator))
		protectedAuth.Use(middleware.Tenant(cfg.TenantService))
		protectedAuth.Use(middleware.Audit(cfg.AuditService))

		authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)
		authHandler.RegisterRoutes(publicAuth, protectedAuth)

		// System administration endpoints.
		system := apiV1.Group("/system")
		system.Use(middleware.Auth(cfg.JWTValidator))
		system.Use(middleware.Tenant(cfg.TenantService))
		system.Use(middleware.Audit(cfg.AuditService))

		handlers.NewUserHandler(baseHandler, cfg.UserService).RegisterRoutes(system, authz)
		handlers.NewRoleHandler(baseHandler, cfg.RoleService).RegisterRoutes(system, authz)
		handlers.NewMenuHandler(baseHandler, cfg.MenuService).RegisterRoutes(system, authz)
		handlers.NewDeptHandler(baseHandler, cfg.DeptService, cfg.UserService).RegisterRoutes(system, authz)
		handlers.NewPostHandler(baseHandler, cfg.PostService).RegisterRoutes(system, authz)
		handlers.NewTenantHandler(baseHandler, cfg.TenantService).RegisterRoutes(system, authz)
		handlers.NewAuditHandler(baseHandler, cfg.AuditService).RegisterRoutes(system, authz)
	}

	return router
}
