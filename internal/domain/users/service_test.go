package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlas/internal/core/apperror"
	"atlas/internal/core/entity"
	"atlas/internal/core/id"
	"atlas/internal/domain"
)

// fakeTx runs the function directly; transaction semantics are covered by
// the storage layer.
type fakeTx struct{}

func (fakeTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	users  map[id.ID]*User
	links  []*RoleLink
	nextID id.ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[id.ID]*User{}, nextID: 100}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *User) (id.ID, error) {
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = u
	return u.ID, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	u, ok := r.users[userID]
	if !ok || u.IsDeleted() {
		return nil, apperror.NewNotFound("user", userID)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *User) error {
	if _, ok := r.users[u.ID]; !ok {
		return apperror.NewNotFound("user", u.ID)
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) SoftDelete(ctx context.Context, userID id.ID) error {
	u, ok := r.users[userID]
	if !ok || u.IsDeleted() {
		return apperror.NewNotFound("user", userID)
	}
	u.MarkDeleted()
	return nil
}

func (r *fakeUserRepo) ListAll(ctx context.Context) ([]*User, error) {
	var out []*User
	for _, u := range r.users {
		if !u.IsDeleted() {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Page(ctx context.Context, page domain.PageQuery, q PageQuery) (domain.PageResult[*User], error) {
	items, _ := r.ListAll(ctx)
	return domain.PageResult[*User]{PageNum: 1, PageSize: 10, Total: int64(len(items)), Items: items}, nil
}

func (r *fakeUserRepo) ListByDept(ctx context.Context, deptID id.ID) ([]*User, error) {
	var out []*User
	for _, u := range r.users {
		if !u.IsDeleted() && u.DeptIDs.Contains(deptID) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Links(ctx context.Context, userID id.ID) ([]*RoleLink, error) {
	var out []*RoleLink
	for _, l := range r.links {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ActiveLink(ctx context.Context, userID id.ID) (*RoleLink, error) {
	for _, l := range r.links {
		if l.UserID == userID && l.Status == LinkStatusActive {
			return l, nil
		}
	}
	return nil, apperror.NewNotFound("active role assignment", userID)
}

func (r *fakeUserRepo) FindLink(ctx context.Context, userID, roleID id.ID) (*RoleLink, error) {
	for _, l := range r.links {
		if l.UserID == userID && l.RoleID == roleID {
			return l, nil
		}
	}
	return nil, apperror.NewNotFound("role assignment", roleID)
}

func (r *fakeUserRepo) SetLinkStatus(ctx context.Context, linkID id.ID, status int) error {
	for _, l := range r.links {
		if l.ID == linkID {
			l.Status = status
			return nil
		}
	}
	return apperror.NewNotFound("role assignment", linkID)
}

func (r *fakeUserRepo) ReplaceLinks(ctx context.Context, userID id.ID, roleIDs []id.ID) error {
	kept := r.links[:0]
	for _, l := range r.links {
		if l.UserID != userID {
			kept = append(kept, l)
		}
	}
	r.links = kept
	for i, roleID := range roleIDs {
		status := LinkStatusNormal
		if i == 0 {
			status = LinkStatusActive
		}
		r.nextID++
		r.links = append(r.links, &RoleLink{ID: r.nextID, UserID: userID, RoleID: roleID, Status: status})
	}
	return nil
}

func (r *fakeUserRepo) addLink(userID, roleID id.ID, status int) *RoleLink {
	r.nextID++
	l := &RoleLink{ID: r.nextID, UserID: userID, RoleID: roleID, Status: status}
	r.links = append(r.links, l)
	return l
}

func newTestService(repo *fakeUserRepo) *Service {
	return NewService(repo, nil, nil, nil, fakeTx{})
}

func TestSwitchRole_MovesActiveMark(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	active := repo.addLink(1, 10, LinkStatusActive)
	target := repo.addLink(1, 20, LinkStatusNormal)

	err := svc.SwitchRole(context.Background(), 1, 20)
	require.NoError(t, err)

	assert.Equal(t, LinkStatusNormal, active.Status)
	assert.Equal(t, LinkStatusActive, target.Status)
}

func TestSwitchRole_SameRoleIsNoOp(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	active := repo.addLink(1, 10, LinkStatusActive)

	err := svc.SwitchRole(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, LinkStatusActive, active.Status)
}

func TestSwitchRole_UnassignedRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	repo.addLink(1, 10, LinkStatusActive)

	err := svc.SwitchRole(context.Background(), 1, 99)
	assert.True(t, apperror.IsNotFound(err))
}

func TestSwitchRole_ScopedToActingUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	// Both users hold role 20; user 2's assignment of it is active.
	mine := repo.addLink(1, 10, LinkStatusActive)
	myTarget := repo.addLink(1, 20, LinkStatusNormal)
	other := repo.addLink(2, 20, LinkStatusActive)

	err := svc.SwitchRole(context.Background(), 1, 20)
	require.NoError(t, err)

	assert.Equal(t, LinkStatusNormal, mine.Status)
	assert.Equal(t, LinkStatusActive, myTarget.Status)
	assert.Equal(t, LinkStatusActive, other.Status, "other user's assignment must not change")
}

func TestSwitchRole_NoActiveAssignment(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	repo.addLink(1, 10, LinkStatusNormal)

	err := svc.SwitchRole(context.Background(), 1, 10)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreate_HashesPasswordAndAssignsRoles(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	u := &User{Username: "alice"}
	userID, err := svc.Create(context.Background(), u, "s3cret-pass", []id.ID{10, 20})
	require.NoError(t, err)
	require.False(t, userID.IsZero())

	stored := repo.users[userID]
	assert.NotEqual(t, "s3cret-pass", stored.Password)
	assert.True(t, stored.CheckPassword("s3cret-pass"))

	links, _ := repo.Links(context.Background(), userID)
	require.Len(t, links, 2)
	assert.Equal(t, LinkStatusActive, links[0].Status)
	assert.Equal(t, id.ID(10), links[0].RoleID)
	assert.Equal(t, LinkStatusNormal, links[1].Status)
}

func TestCreate_RejectsShortPassword(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.Create(context.Background(), &User{Username: "bob"}, "abc", nil)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestCreate_RejectsEmptyUsername(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.Create(context.Background(), &User{}, "s3cret-pass", nil)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestRemoveFromDept_DetachesUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	u := &User{Username: "carol", DeptIDs: entity.IDList{3, 5}}
	u.ID = 1
	repo.users[1] = u

	err := svc.RemoveFromDept(context.Background(), 3, 1)
	require.NoError(t, err)
	assert.Equal(t, entity.IDList{5}, repo.users[1].DeptIDs)
}

func TestRemoveFromDept_NotAMember(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	u := &User{Username: "carol", DeptIDs: entity.IDList{5}}
	u.ID = 1
	repo.users[1] = u

	err := svc.RemoveFromDept(context.Background(), 3, 1)
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdateStatus_RejectsUnknownValue(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	err := svc.UpdateStatus(context.Background(), 1, 7)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestUpdate_NeverPatchesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	u := &User{Username: "dave"}
	require.NoError(t, u.SetPassword("original-pass"))
	u.ID = 1
	repo.users[1] = u

	_, err := svc.Update(context.Background(), 1, &User{Password: "sneaky", Nickname: "Dave"}, nil)
	require.NoError(t, err)

	assert.True(t, repo.users[1].CheckPassword("original-pass"))
	assert.Equal(t, "Dave", repo.users[1].Nickname)
}
