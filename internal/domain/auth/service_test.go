package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "atlas/internal/core/context"
	"atlas/internal/core/apperror"
	"atlas/internal/core/id"
	"atlas/internal/core/tenant"
	"atlas/internal/domain"
	"atlas/internal/domain/users"
)

type fakeTx struct{}

func (fakeTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAuthRepo struct {
	usersByName map[string]*users.User
	grants      map[string]bool // "userID/identifier"
	permCalls   int
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{usersByName: map[string]*users.User{}, grants: map[string]bool{}}
}

func (r *fakeAuthRepo) grant(userID id.ID, identifier string) {
	r.grants[fmt.Sprintf("%d/%s", userID, identifier)] = true
}

func (r *fakeAuthRepo) GetUserByUsername(ctx context.Context, username string) (*users.User, error) {
	u, ok := r.usersByName[username]
	if !ok {
		return nil, apperror.NewNotFound("user", username)
	}
	return u, nil
}

func (r *fakeAuthRepo) HasPermission(ctx context.Context, userID id.ID, identifier string) (bool, error) {
	r.permCalls++
	return r.grants[fmt.Sprintf("%d/%s", userID, identifier)], nil
}

type fakeTokenRepo struct {
	byHash      map[string]*RefreshToken
	nextID      id.ID
	revokeAll   []string // reasons, in call order
	revokedByID map[id.ID]string
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{byHash: map[string]*RefreshToken{}, revokedByID: map[id.ID]string{}}
}

func (r *fakeTokenRepo) SaveRefreshToken(ctx context.Context, token *RefreshToken) error {
	r.nextID++
	token.ID = r.nextID
	r.byHash[token.TokenHash] = token
	return nil
}

func (r *fakeTokenRepo) GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshToken, error) {
	t, ok := r.byHash[tokenHash]
	if !ok {
		return nil, apperror.NewNotFound("refresh token", "hash")
	}
	return t, nil
}

func (r *fakeTokenRepo) RevokeRefreshToken(ctx context.Context, tokenID id.ID, reason string) error {
	r.revokedByID[tokenID] = reason
	for _, t := range r.byHash {
		if t.ID == tokenID {
			now := time.Now()
			t.RevokedAt = &now
			t.RevokedReason = reason
		}
	}
	return nil
}

func (r *fakeTokenRepo) RevokeAllUserTokens(ctx context.Context, userID id.ID, reason string) error {
	r.revokeAll = append(r.revokeAll, reason)
	now := time.Now()
	for _, t := range r.byHash {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
			t.RevokedReason = reason
		}
	}
	return nil
}

func (r *fakeTokenRepo) CleanupExpiredTokens(ctx context.Context) (int, error) {
	removed := 0
	for hash, t := range r.byHash {
		if t.ExpiresAt.Before(time.Now()) {
			delete(r.byHash, hash)
			removed++
		}
	}
	return removed, nil
}

// fakeTenantGate treats every tenant as active unless marked disabled.
type fakeTenantGate struct {
	disabled map[id.ID]bool
}

func newFakeTenantGate() *fakeTenantGate {
	return &fakeTenantGate{disabled: map[id.ID]bool{}}
}

func (g *fakeTenantGate) Resolve(ctx context.Context, tenantID id.ID) (*tenant.Info, error) {
	if g.disabled[tenantID] {
		return nil, apperror.NewTenantDisabled(tenantID)
	}
	return &tenant.Info{ID: int64(tenantID), Status: tenant.StatusNormal}, nil
}

func testUser(userID id.ID, username, password string) *users.User {
	u := &users.User{Username: username}
	u.ID = userID
	if password != "" {
		if err := u.SetPassword(password); err != nil {
			panic(err)
		}
	}
	return u
}

func newTestAuthService(repo *fakeAuthRepo, tokens *fakeTokenRepo) *Service {
	return newTestAuthServiceWithGate(repo, tokens, newFakeTenantGate())
}

func newTestAuthServiceWithGate(repo *fakeAuthRepo, tokens *fakeTokenRepo, gate TenantGate) *Service {
	jwtSvc := NewJWTService(DefaultJWTConfig("test-secret"))
	return NewService(repo, tokens, nil, nil, jwtSvc, gate, ServiceConfig{RefreshTokenTTL: time.Hour})
}

func userCtx(userID id.ID, superuser bool) context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID:      userID,
		Username:    "tester",
		IsSuperuser: superuser,
	})
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeAuthRepo()
	tokens := newFakeTokenRepo()
	repo.usersByName["alice"] = testUser(1, "alice", "s3cret-pass")
	svc := newTestAuthService(repo, tokens)

	pair, user, err := svc.Login(context.Background(), Credentials{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, id.ID(1), user.ID)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	// Only the hash of the opaque refresh token is stored.
	_, plainStored := tokens.byHash[pair.RefreshToken]
	assert.False(t, plainStored)
	assert.Len(t, tokens.byHash, 1)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeAuthRepo()
	repo.usersByName["alice"] = testUser(1, "alice", "s3cret-pass")
	svc := newTestAuthService(repo, newFakeTokenRepo())

	_, _, err := svc.Login(context.Background(), Credentials{Username: "alice", Password: "wrong"})
	requireCode(t, err, apperror.CodeUnauthorized)
}

func TestLogin_UnknownUserSameError(t *testing.T) {
	svc := newTestAuthService(newFakeAuthRepo(), newFakeTokenRepo())

	_, _, err := svc.Login(context.Background(), Credentials{Username: "ghost", Password: "whatever"})
	requireCode(t, err, apperror.CodeUnauthorized)

	// Unknown user and bad password are indistinguishable to the caller.
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, "invalid credentials", appErr.Message)
}

func TestLogin_DisabledAccount(t *testing.T) {
	repo := newFakeAuthRepo()
	u := testUser(1, "alice", "s3cret-pass")
	u.Status = 1
	repo.usersByName["alice"] = u
	svc := newTestAuthService(repo, newFakeTokenRepo())

	_, _, err := svc.Login(context.Background(), Credentials{Username: "alice", Password: "s3cret-pass"})
	requireCode(t, err, apperror.CodeForbidden)
}

func TestLogin_DisabledTenantRejected(t *testing.T) {
	repo := newFakeAuthRepo()
	tokens := newFakeTokenRepo()
	tid := id.ID(42)
	u := testUser(1, "alice", "s3cret-pass")
	u.TenantID = &tid
	repo.usersByName["alice"] = u

	gate := newFakeTenantGate()
	gate.disabled[tid] = true
	svc := newTestAuthServiceWithGate(repo, tokens, gate)

	// No header or context tenant: the gate fires off the user's own row.
	_, _, err := svc.Login(context.Background(), Credentials{Username: "alice", Password: "s3cret-pass"})
	requireCode(t, err, apperror.CodeTenantDisabled)
	assert.Empty(t, tokens.byHash)
}

func TestLogin_ActiveTenantAllowed(t *testing.T) {
	repo := newFakeAuthRepo()
	tid := id.ID(42)
	u := testUser(1, "alice", "s3cret-pass")
	u.TenantID = &tid
	repo.usersByName["alice"] = u
	svc := newTestAuthService(repo, newFakeTokenRepo())

	_, _, err := svc.Login(context.Background(), Credentials{Username: "alice", Password: "s3cret-pass"})
	assert.NoError(t, err)
}

func TestRefresh_DisabledTenantRejected(t *testing.T) {
	repo := newFakeAuthRepo()
	tokens := newFakeTokenRepo()
	tid := id.ID(42)
	u := testUser(1, "alice", "s3cret-pass")
	u.TenantID = &tid
	repo.usersByName["alice"] = u

	gate := newFakeTenantGate()
	jwtSvc := NewJWTService(DefaultJWTConfig("test-secret"))
	userSvc := users.NewService(&getUserRepo{user: u}, nil, nil, nil, fakeTx{})
	svc := NewService(repo, tokens, userSvc, nil, jwtSvc, gate, ServiceConfig{RefreshTokenTTL: time.Hour})

	pair, _, err := svc.Login(context.Background(), Credentials{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)

	gate.disabled[tid] = true

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	requireCode(t, err, apperror.CodeTenantDisabled)
}

func TestAuthorize_Granted(t *testing.T) {
	repo := newFakeAuthRepo()
	repo.grant(1, "system:user:list")
	svc := newTestAuthService(repo, newFakeTokenRepo())

	err := svc.Authorize(userCtx(1, false), "system:user:list")
	assert.NoError(t, err)
	assert.Equal(t, 1, repo.permCalls)
}

func TestAuthorize_Denied(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestAuthService(repo, newFakeTokenRepo())

	err := svc.Authorize(userCtx(1, false), "system:user:delete")
	requireCode(t, err, apperror.CodeForbidden)

	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, "system:user:delete", appErr.Details["permission"])
}

func TestAuthorize_SuperuserBypassesLookup(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestAuthService(repo, newFakeTokenRepo())

	err := svc.Authorize(userCtx(1, true), "system:anything:at:all")
	assert.NoError(t, err)
	assert.Zero(t, repo.permCalls)
}

func TestAuthorize_Unauthenticated(t *testing.T) {
	svc := newTestAuthService(newFakeAuthRepo(), newFakeTokenRepo())

	err := svc.Authorize(context.Background(), "system:user:list")
	requireCode(t, err, apperror.CodeUnauthorized)
}

func TestRefresh_RevokedTokenRejected(t *testing.T) {
	repo := newFakeAuthRepo()
	tokens := newFakeTokenRepo()
	repo.usersByName["alice"] = testUser(1, "alice", "s3cret-pass")
	svc := newTestAuthService(repo, tokens)

	pair, _, err := svc.Login(context.Background(), Credentials{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), 1))

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	requireCode(t, err, apperror.CodeUnauthorized)
}

func TestRefresh_UnknownTokenRejected(t *testing.T) {
	svc := newTestAuthService(newFakeAuthRepo(), newFakeTokenRepo())

	_, err := svc.Refresh(context.Background(), "never-issued")
	requireCode(t, err, apperror.CodeUnauthorized)
}

func TestCleanupExpiredTokens_RemovesPastExpiry(t *testing.T) {
	repo := newFakeAuthRepo()
	tokens := newFakeTokenRepo()
	repo.usersByName["alice"] = testUser(1, "alice", "s3cret-pass")

	jwtSvc := NewJWTService(DefaultJWTConfig("test-secret"))
	svc := NewService(repo, tokens, nil, nil, jwtSvc, newFakeTenantGate(),
		ServiceConfig{RefreshTokenTTL: -time.Minute})

	_, _, err := svc.Login(context.Background(), Credentials{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.Len(t, tokens.byHash, 1)

	n, err := svc.CleanupExpiredTokens(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Empty(t, tokens.byHash)
}

func TestSwitchRole_RevokesIssuedTokens(t *testing.T) {
	repo := newFakeAuthRepo()
	tokens := newFakeTokenRepo()

	userRepo := &switchUserRepo{
		active: &users.RoleLink{ID: 1, UserID: 1, RoleID: 10, Status: users.LinkStatusActive},
		target: &users.RoleLink{ID: 2, UserID: 1, RoleID: 20, Status: users.LinkStatusNormal},
	}
	userSvc := users.NewService(userRepo, nil, nil, nil, fakeTx{})

	jwtSvc := NewJWTService(DefaultJWTConfig("test-secret"))
	svc := NewService(repo, tokens, userSvc, nil, jwtSvc, newFakeTenantGate(), ServiceConfig{RefreshTokenTTL: time.Hour})

	err := svc.SwitchRole(userCtx(1, false), 20)
	require.NoError(t, err)

	assert.Equal(t, users.LinkStatusNormal, userRepo.active.Status)
	assert.Equal(t, users.LinkStatusActive, userRepo.target.Status)
	require.Len(t, tokens.revokeAll, 1)
	assert.Equal(t, "role switched", tokens.revokeAll[0])
}

func TestSwitchRole_Unauthenticated(t *testing.T) {
	svc := newTestAuthService(newFakeAuthRepo(), newFakeTokenRepo())

	err := svc.SwitchRole(context.Background(), 20)
	requireCode(t, err, apperror.CodeUnauthorized)
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok, "expected AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

// getUserRepo serves lookups by ID only.
type getUserRepo struct {
	switchUserRepo
	user *users.User
}

func (r *getUserRepo) GetByID(ctx context.Context, userID id.ID) (*users.User, error) {
	if r.user != nil && r.user.ID == userID {
		return r.user, nil
	}
	return nil, apperror.NewNotFound("user", userID)
}

// switchUserRepo supports only the link operations SwitchRole touches.
type switchUserRepo struct {
	active *users.RoleLink
	target *users.RoleLink
}

func (r *switchUserRepo) links() []*users.RoleLink {
	return []*users.RoleLink{r.active, r.target}
}

func (r *switchUserRepo) Create(ctx context.Context, u *users.User) (id.ID, error) {
	panic("not used")
}

func (r *switchUserRepo) GetByID(ctx context.Context, userID id.ID) (*users.User, error) {
	panic("not used")
}

func (r *switchUserRepo) Update(ctx context.Context, u *users.User) error { panic("not used") }

func (r *switchUserRepo) SoftDelete(ctx context.Context, userID id.ID) error { panic("not used") }

func (r *switchUserRepo) ListAll(ctx context.Context) ([]*users.User, error) { panic("not used") }

func (r *switchUserRepo) Page(ctx context.Context, page domain.PageQuery, q users.PageQuery) (domain.PageResult[*users.User], error) {
	panic("not used")
}

func (r *switchUserRepo) ListByDept(ctx context.Context, deptID id.ID) ([]*users.User, error) {
	panic("not used")
}

func (r *switchUserRepo) Links(ctx context.Context, userID id.ID) ([]*users.RoleLink, error) {
	return r.links(), nil
}

func (r *switchUserRepo) ActiveLink(ctx context.Context, userID id.ID) (*users.RoleLink, error) {
	for _, l := range r.links() {
		if l.UserID == userID && l.Status == users.LinkStatusActive {
			return l, nil
		}
	}
	return nil, apperror.NewNotFound("active role assignment", userID)
}

func (r *switchUserRepo) FindLink(ctx context.Context, userID, roleID id.ID) (*users.RoleLink, error) {
	for _, l := range r.links() {
		if l.UserID == userID && l.RoleID == roleID {
			return l, nil
		}
	}
	return nil, apperror.NewNotFound("role assignment", roleID)
}

func (r *switchUserRepo) SetLinkStatus(ctx context.Context, linkID id.ID, status int) error {
	for _, l := range r.links() {
		if l.ID == linkID {
			l.Status = status
			return nil
		}
	}
	return apperror.NewNotFound("role assignment", linkID)
}

func (r *switchUserRepo) ReplaceLinks(ctx context.Context, userID id.ID, roleIDs []id.ID) error {
	panic("not used")
}
