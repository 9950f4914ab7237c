// Package main provides a CLI tool for seeding the database with initial data:
// the default tenant, the permission tree, the administrator role and the
// platform superuser. Safe to re-run; it exits early when the admin exists.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"atlas/internal/config"
	"atlas/internal/core/apperror"
	"atlas/internal/core/entity"
	"atlas/internal/core/id"
	"atlas/internal/domain/menus"
	"atlas/internal/domain/roles"
	"atlas/internal/domain/tenants"
	"atlas/internal/domain/users"
	"atlas/internal/infrastructure/storage/postgres"
	"atlas/internal/infrastructure/storage/postgres/auth_repo"
	"atlas/internal/infrastructure/storage/postgres/system_repo"
	"atlas/pkg/logger"
)

const (
	adminUsername   = "admin"
	defaultPassword = "admin123"
)

// menuSeed describes one node of the initial permission tree. Children of a
// page are the button grants whose identifiers the route guards check.
type menuSeed struct {
	name       string
	menuType   int
	path       string
	component  string
	icon       string
	identifier string
	sort       int
	children   []menuSeed
}

func systemMenuTree() []menuSeed {
	crud := func(resource string) []menuSeed {
		return []menuSeed{
			{name: "Query", menuType: menus.TypeButton, identifier: "system:" + resource + ":list", sort: 1},
			{name: "Detail", menuType: menus.TypeButton, identifier: "system:" + resource + ":read", sort: 2},
			{name: "Create", menuType: menus.TypeButton, identifier: "system:" + resource + ":create", sort: 3},
			{name: "Update", menuType: menus.TypeButton, identifier: "system:" + resource + ":update", sort: 4},
			{name: "Delete", menuType: menus.TypeButton, identifier: "system:" + resource + ":delete", sort: 5},
		}
	}

	return []menuSeed{
		{
			name: "System", menuType: menus.TypeDirectory, path: "/system", icon: "setting", sort: 1,
			children: []menuSeed{
				{name: "Users", menuType: menus.TypeMenu, path: "user", component: "system/user/index", sort: 1,
					children: crud("user")},
				{name: "Roles", menuType: menus.TypeMenu, path: "role", component: "system/role/index", sort: 2,
					children: crud("role")},
				{name: "Menus", menuType: menus.TypeMenu, path: "menu", component: "system/menu/index", sort: 3,
					children: crud("menu")},
				{name: "Departments", menuType: menus.TypeMenu, path: "dept", component: "system/dept/index", sort: 4,
					children: crud("dept")},
				{name: "Posts", menuType: menus.TypeMenu, path: "post", component: "system/post/index", sort: 5,
					children: crud("post")},
				{name: "Tenants", menuType: menus.TypeMenu, path: "tenant", component: "system/tenant/index", sort: 6,
					children: crud("tenant")},
				{name: "Audit Log", menuType: menus.TypeMenu, path: "audit", component: "system/audit/index", sort: 7,
					children: []menuSeed{
						{name: "Query", menuType: menus.TypeButton, identifier: "system:audit:list", sort: 1},
					}},
			},
		},
	}
}

func main() {
	configPath := flag.String("config", "", "path to config file (optional, env vars override)")
	flag.Parse()

	log, err := logger.New(logger.Config{Level: "info", Development: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		DSN:      cfg.Database.DSN,
		MaxConns: 4,
		MinConns: 1,
	})
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)

	tenantRepo := system_repo.NewTenantRepo(txm)
	menuRepo := system_repo.NewMenuRepo(txm)
	roleRepo := system_repo.NewRoleRepo(txm)
	userRepo := system_repo.NewUserRepo(txm)
	deptRepo := system_repo.NewDeptRepo(txm)
	postRepo := system_repo.NewPostRepo(txm)
	authRepo := auth_repo.NewAuthRepo(txm)

	menuService := menus.NewService(menuRepo)
	roleService := roles.NewService(roleRepo, txm)
	userService := users.NewService(userRepo, deptRepo, postRepo, roleRepo, txm)

	// Idempotency guard: a present admin means the seed already ran.
	if _, err := authRepo.GetUserByUsername(ctx, adminUsername); err == nil {
		log.Infow("seed skipped, admin user already exists", "username", adminUsername)
		return
	} else if !apperror.IsNotFound(err) {
		log.Fatalw("failed to check admin user", "error", err)
	}

	// Seed runs without a tenant in context, so every row is created as a
	// platform row (tenant_id NULL) visible to unscoped traffic.
	if err := seedTenant(ctx, tenantRepo, log); err != nil {
		log.Fatalw("failed to seed tenant", "error", err)
	}

	menuIDs, err := seedMenus(ctx, menuService, systemMenuTree(), 0)
	if err != nil {
		log.Fatalw("failed to seed menus", "error", err)
	}
	log.Infow("permission tree seeded", "nodes", len(menuIDs))

	roleID, err := roleService.Create(ctx, &roles.Role{
		Name:   "Administrator",
		Code:   "admin",
		Status: entity.StatusNormal,
		Remark: "full access to system administration",
	}, menuIDs)
	if err != nil {
		log.Fatalw("failed to seed administrator role", "error", err)
	}
	log.Infow("administrator role seeded", "role_id", roleID)

	password := os.Getenv("ATLAS_SEED_ADMIN_PASSWORD")
	if password == "" {
		password = defaultPassword
		log.Warn("using default admin password, change it after first login")
	}

	admin := &users.User{
		Username:    adminUsername,
		Nickname:    "Administrator",
		Status:      entity.StatusNormal,
		IsSuperuser: true,
	}
	userID, err := userService.Create(ctx, admin, password, []id.ID{roleID})
	if err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	log.Infow("seed complete", "admin_id", userID, "username", adminUsername)
}

func seedTenant(ctx context.Context, repo *system_repo.TenantRepo, log *logger.Logger) error {
	if _, err := repo.GetByCode(ctx, "default"); err == nil {
		log.Info("default tenant already exists")
		return nil
	} else if !apperror.IsNotFound(err) {
		return err
	}

	t := &tenants.Tenant{
		Name:   "Default Tenant",
		Code:   "default",
		Status: entity.StatusNormal,
		Remark: "created by seed",
	}
	t.Base = entity.NewBase(adminUsername)

	tenantID, err := repo.Create(ctx, t)
	if err != nil {
		return err
	}
	log.Infow("default tenant seeded", "tenant_id", tenantID)
	return nil
}

// seedMenus inserts the tree depth-first and returns every created ID.
func seedMenus(ctx context.Context, svc *menus.Service, nodes []menuSeed, pid id.ID) ([]id.ID, error) {
	var ids []id.ID
	for _, n := range nodes {
		m := &menus.Menu{
			Name:       n.name,
			PID:        pid,
			Type:       n.menuType,
			Path:       n.path,
			Component:  n.component,
			Icon:       n.icon,
			Identifier: n.identifier,
			Sort:       n.sort,
			Status:     entity.StatusNormal,
			Visible:    true,
		}
		menuID, err := svc.Create(ctx, m)
		if err != nil {
			return nil, fmt.Errorf("create menu %q: %w", n.name, err)
		}
		ids = append(ids, menuID)

		childIDs, err := seedMenus(ctx, svc, n.children, menuID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, childIDs...)
	}
	return ids, nil
}
