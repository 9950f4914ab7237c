package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"atlas/internal/core/apperror"
	appctx "atlas/internal/core/context"
	"atlas/internal/core/id"
	"atlas/internal/core/tenant"
	"atlas/internal/domain/menus"
	"atlas/internal/domain/users"
	"atlas/pkg/logger"
)

// TenantGate resolves a tenant and rejects disabled ones. Implemented by
// the tenant service; login and refresh consult it so a user of a
// disabled tenant cannot obtain tokens regardless of request headers.
type TenantGate interface {
	Resolve(ctx context.Context, tenantID id.ID) (*tenant.Info, error)
}

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	RefreshTokenTTL time.Duration
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

// Service provides authentication and authorization logic.
//
// Authorization is resolved against the grant tables on every call rather
// than from token claims, so role and permission changes apply to requests
// already holding a valid token.
type Service struct {
	repo       Repository
	tokenRepo  TokenRepository
	userSvc    *users.Service
	menuSvc    *menus.Service
	jwtService *JWTService
	tenantGate TenantGate
	config     ServiceConfig
}

// NewService creates a new auth service.
func NewService(
	repo Repository,
	tokenRepo TokenRepository,
	userSvc *users.Service,
	menuSvc *menus.Service,
	jwtService *JWTService,
	tenantGate TenantGate,
	config ServiceConfig,
) *Service {
	return &Service{
		repo:       repo,
		tokenRepo:  tokenRepo,
		userSvc:    userSvc,
		menuSvc:    menuSvc,
		jwtService: jwtService,
		tenantGate: tenantGate,
		config:     config,
	}
}

// Register creates a new account without role assignments.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*users.User, error) {
	if _, err := s.repo.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, apperror.NewDuplicate("user", "username", req.Username)
	} else if !apperror.IsNotFound(err) {
		return nil, err
	}

	u := &users.User{
		Username: req.Username,
		Nickname: req.Nickname,
		Email:    req.Email,
	}
	userID, err := s.userSvc.Create(ctx, u, req.Password, nil)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered", "user_id", userID, "username", req.Username)
	return s.userSvc.Get(ctx, userID)
}

// Login authenticates a user and returns a token pair. The tenant in the
// context scopes the username lookup and lands in the token claims.
func (s *Service) Login(ctx context.Context, creds Credentials) (*TokenPair, *users.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, creds.Username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, nil, err
	}

	if !user.CheckPassword(creds.Password) {
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}
	if err := user.CanLogin(); err != nil {
		return nil, nil, err
	}
	if err := s.checkTenant(ctx, user); err != nil {
		return nil, nil, err
	}

	tokens, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}

	logger.Info(ctx, "user logged in", "user_id", user.ID, "username", user.Username)
	return tokens, user, nil
}

// Refresh rotates a refresh token and issues a new pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.tokenRepo.GetRefreshToken(ctx, hashToken(refreshToken))
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid refresh token")
	}
	if !token.IsValid() {
		return nil, apperror.NewUnauthorized("refresh token expired or revoked")
	}

	user, err := s.userSvc.Get(ctx, token.UserID)
	if err != nil {
		return nil, apperror.NewUnauthorized("user not found")
	}
	if err := user.CanLogin(); err != nil {
		return nil, err
	}
	if err := s.checkTenant(ctx, user); err != nil {
		return nil, err
	}

	_ = s.tokenRepo.RevokeRefreshToken(ctx, token.ID, "refreshed")

	return s.generateTokenPair(ctx, user)
}

// checkTenant rejects users whose tenant is disabled or gone. Platform
// accounts carry no tenant and pass through.
func (s *Service) checkTenant(ctx context.Context, user *users.User) error {
	if user.TenantID == nil {
		return nil
	}
	if _, err := s.tenantGate.Resolve(ctx, *user.TenantID); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewTenantDisabled(*user.TenantID)
		}
		return err
	}
	return nil
}

// Logout revokes all of the user's refresh tokens.
func (s *Service) Logout(ctx context.Context, userID id.ID) error {
	return s.tokenRepo.RevokeAllUserTokens(ctx, userID, "logout")
}

// CleanupExpiredTokens deletes refresh tokens past their expiry and
// returns the number removed. Run periodically by the server.
func (s *Service) CleanupExpiredTokens(ctx context.Context) (int, error) {
	return s.tokenRepo.CleanupExpiredTokens(ctx)
}

// Authorize checks whether the calling user holds the permission
// identifier. Superusers bypass the lookup.
func (s *Service) Authorize(ctx context.Context, identifier string) error {
	user := appctx.GetUser(ctx)
	if user == nil {
		return apperror.NewUnauthorized("authentication required")
	}
	if user.IsSuperuser {
		return nil
	}

	ok, err := s.repo.HasPermission(ctx, user.UserID, identifier)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewForbidden("permission denied").WithDetail("permission", identifier)
	}
	return nil
}

// Profile returns the calling user's account details and the menu tree
// visible through the acting role.
func (s *Service) Profile(ctx context.Context) (*Profile, error) {
	userID := appctx.GetUserID(ctx)
	if userID.IsZero() {
		return nil, apperror.NewUnauthorized("authentication required")
	}

	detail, err := s.userSvc.Detail(ctx, userID)
	if err != nil {
		return nil, err
	}
	tree, err := s.menuSvc.TreeForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: detail, Menus: tree}, nil
}

// SwitchRole changes the calling user's acting role and revokes issued
// refresh tokens so re-login picks up the new role.
func (s *Service) SwitchRole(ctx context.Context, roleID id.ID) error {
	userID := appctx.GetUserID(ctx)
	if userID.IsZero() {
		return apperror.NewUnauthorized("authentication required")
	}

	if err := s.userSvc.SwitchRole(ctx, userID, roleID); err != nil {
		return err
	}

	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID, "role switched"); err != nil {
		logger.Warn(ctx, "failed to revoke tokens after role switch", "user_id", userID, "error", err)
	}
	return nil
}

// generateTokenPair creates access and refresh tokens.
func (s *Service) generateTokenPair(ctx context.Context, user *users.User) (*TokenPair, error) {
	var tenantID id.ID
	if user.TenantID != nil {
		tenantID = *user.TenantID
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(
		user.ID, tenantID, user.Username, user.Nickname, user.IsSuperuser)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshTokenRaw, err := generateRandomToken(32)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	refreshToken := &RefreshToken{
		UserID:     user.ID,
		TokenHash:  hashToken(refreshTokenRaw),
		ExpiresAt:  time.Now().Add(s.config.RefreshTokenTTL),
		CreateTime: time.Now(),
	}
	if err := s.tokenRepo.SaveRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenRaw,
		ExpiresAt:    expiresAt,
		TokenType:    "Bearer",
	}, nil
}

// hashToken creates SHA256 hash of token.
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// generateRandomToken generates a random token string.
func generateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
