// Package main is the entry point for the atlas API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"atlas/internal/config"
	"atlas/internal/domain/audit"
	"atlas/internal/domain/auth"
	"atlas/internal/domain/depts"
	"atlas/internal/domain/menus"
	"atlas/internal/domain/posts"
	"atlas/internal/domain/roles"
	"atlas/internal/domain/tenants"
	"atlas/internal/domain/users"
	v1 "atlas/internal/infrastructure/http/v1"
	"atlas/internal/infrastructure/storage/postgres"
	"atlas/internal/infrastructure/storage/postgres/auth_repo"
	"atlas/internal/infrastructure/storage/postgres/system_repo"
	"atlas/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional, env vars override)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		File:        cfg.Log.File,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAgeDays:  cfg.Log.MaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	ctx := context.Background()
	log.Info("starting atlas server")

	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		DSN:      cfg.Database.DSN,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txm := postgres.NewTxManager(pool)

	// Repositories
	tenantRepo := system_repo.NewTenantRepo(txm)
	postRepo := system_repo.NewPostRepo(txm)
	deptRepo := system_repo.NewDeptRepo(txm)
	menuRepo := system_repo.NewMenuRepo(txm)
	roleRepo := system_repo.NewRoleRepo(txm)
	userRepo := system_repo.NewUserRepo(txm)
	authRepo := auth_repo.NewAuthRepo(txm)
	tokenRepo := auth_repo.NewTokenRepo(txm)
	auditRepo, err := postgres.NewAuditRepo(txm)
	if err != nil {
		log.Fatalw("failed to initialize audit repository", "error", err)
	}

	// Services
	tenantService := tenants.NewService(tenantRepo)
	postService := posts.NewService(postRepo)
	deptService := depts.NewService(deptRepo, txm)
	menuService := menus.NewService(menuRepo)
	roleService := roles.NewService(roleRepo, txm)
	userService := users.NewService(userRepo, deptRepo, postRepo, roleRepo, txm)
	auditService := audit.NewService(auditRepo)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		Secret:         cfg.JWT.Secret,
		Issuer:         cfg.JWT.Issuer,
		AccessTokenTTL: cfg.JWT.AccessTokenTTL,
	})
	authService := auth.NewService(authRepo, tokenRepo, userService, menuService, jwtService, tenantService, auth.ServiceConfig{
		RefreshTokenTTL: cfg.JWT.RefreshTokenTTL,
	})

	if cfg.Maintenance.Interval > 0 {
		go runMaintenance(ctx, log, auditService, authService, cfg.Maintenance)
	}

	router := v1.NewRouter(v1.RouterConfig{
		Pool:          pool,
		Logger:        log,
		JWTValidator:  jwtService,
		AuthService:   authService,
		UserService:   userService,
		RoleService:   roleService,
		MenuService:   menuService,
		DeptService:   deptService,
		PostService:   postService,
		TenantService: tenantService,
		AuditService:  auditService,
		Mode:          cfg.Server.Mode,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infow("http server listening", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("http server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server shutdown failed", "error", err)
	}

	log.Info("server stopped")
}

// runMaintenance periodically purges aged audit entries and expired
// refresh tokens.
func runMaintenance(ctx context.Context, log *logger.Logger, auditSvc *audit.Service, authSvc *auth.Service, cfg config.MaintenanceConfig) {
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := auditSvc.Purge(ctx, cfg.AuditRetention); err != nil {
				log.Errorw("audit purge failed", "error", err)
			} else if n > 0 {
				log.Infow("purged audit entries", "count", n)
			}

			if n, err := authSvc.CleanupExpiredTokens(ctx); err != nil {
				log.Errorw("refresh token cleanup failed", "error", err)
			} else if n > 0 {
				log.Infow("removed expired refresh tokens", "count", n)
			}
		}
	}
}
