package depts

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlas/internal/core/apperror"
	"atlas/internal/core/entity"
	"atlas/internal/core/id"
)

type fakeTx struct{}

func (fakeTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeDeptRepo struct {
	depts  map[id.ID]*Dept
	nextID id.ID
}

func newFakeDeptRepo() *fakeDeptRepo {
	return &fakeDeptRepo{depts: map[id.ID]*Dept{}, nextID: 1000}
}

func (r *fakeDeptRepo) Create(ctx context.Context, d *Dept) (id.ID, error) {
	r.nextID++
	d.ID = r.nextID
	r.depts[d.ID] = d
	return d.ID, nil
}

func (r *fakeDeptRepo) GetByID(ctx context.Context, deptID id.ID) (*Dept, error) {
	d, ok := r.depts[deptID]
	if !ok || d.IsDeleted() {
		return nil, apperror.NewNotFound("department", deptID)
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDeptRepo) Update(ctx context.Context, d *Dept) error {
	if _, ok := r.depts[d.ID]; !ok {
		return apperror.NewNotFound("department", d.ID)
	}
	r.depts[d.ID] = d
	return nil
}

func (r *fakeDeptRepo) SoftDelete(ctx context.Context, deptID id.ID) error {
	d, ok := r.depts[deptID]
	if !ok || d.IsDeleted() {
		return apperror.NewNotFound("department", deptID)
	}
	d.MarkDeleted()
	return nil
}

func (r *fakeDeptRepo) ListAll(ctx context.Context) ([]*Dept, error) {
	var out []*Dept
	for _, d := range r.depts {
		if !d.IsDeleted() {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDeptRepo) GetByIDs(ctx context.Context, ids []id.ID) ([]*Dept, error) {
	var out []*Dept
	for _, deptID := range ids {
		if d, ok := r.depts[deptID]; ok && !d.IsDeleted() {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDeptRepo) DeleteByRemarkTag(ctx context.Context, tag string) error {
	for deptID, d := range r.depts {
		if strings.Contains(d.Remark, tag) {
			delete(r.depts, deptID)
		}
	}
	return nil
}

func (r *fakeDeptRepo) CreateWithID(ctx context.Context, d *Dept) error {
	if _, ok := r.depts[d.ID]; ok {
		return apperror.NewDuplicate("department", "id", d.ID.String())
	}
	r.depts[d.ID] = d
	return nil
}

func (r *fakeDeptRepo) UpdateParent(ctx context.Context, deptID, pid id.ID, level int) error {
	d, ok := r.depts[deptID]
	if !ok {
		return apperror.NewNotFound("department", deptID)
	}
	d.PID = pid
	d.Level = level
	return nil
}

func TestImport_BuildsHierarchy(t *testing.T) {
	repo := newFakeDeptRepo()
	svc := NewService(repo, fakeTx{})

	// Deliberately out of order: children listed before their parents.
	rows := []ImportRow{
		{ID: 3, Name: "Team A", ParentID: 2},
		{ID: 1, Name: "Head Office"},
		{ID: 2, Name: "Engineering", ParentID: 1, Leader: "lin"},
	}

	res, err := svc.Import(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, 3, res.SuccessCount)
	assert.Equal(t, 0, res.ErrorCount)

	root := repo.depts[1]
	eng := repo.depts[2]
	team := repo.depts[3]
	require.NotNil(t, root)
	require.NotNil(t, eng)
	require.NotNil(t, team)

	assert.Equal(t, id.Root, root.PID)
	assert.Equal(t, 1, root.Level)
	assert.Equal(t, id.ID(1), eng.PID)
	assert.Equal(t, 2, eng.Level)
	assert.Equal(t, "lin", eng.Leader)
	assert.Equal(t, id.ID(2), team.PID)
	assert.Equal(t, 3, team.Level)
}

func TestImport_SkipsBadRowsAndKeepsRest(t *testing.T) {
	repo := newFakeDeptRepo()
	svc := NewService(repo, fakeTx{})

	rows := []ImportRow{
		{ID: 1, Name: "Head Office"},
		{ID: 2, Name: ""}, // missing name
		{ID: 0, Name: "No ID"},
	}

	res, err := svc.Import(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, 1, res.SuccessCount)
	assert.Equal(t, 2, res.ErrorCount)
	assert.Len(t, res.Errors, 2)
	assert.NotNil(t, repo.depts[1])
}

func TestImport_UnknownParentBecomesRoot(t *testing.T) {
	repo := newFakeDeptRepo()
	svc := NewService(repo, fakeTx{})

	rows := []ImportRow{
		{ID: 5, Name: "Orphan", ParentID: 42},
	}

	res, err := svc.Import(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, 1, res.SuccessCount)

	orphan := repo.depts[5]
	require.NotNil(t, orphan)
	assert.Equal(t, id.Root, orphan.PID)
	assert.Equal(t, 1, orphan.Level)
}

func TestImport_ReplacesPreviousImport(t *testing.T) {
	repo := newFakeDeptRepo()
	svc := NewService(repo, fakeTx{})

	stale := &Dept{Name: "Old Import", Remark: importTag + " - source id 9"}
	stale.ID = 9
	repo.depts[9] = stale

	manual := &Dept{Name: "Hand Made", Remark: "created manually"}
	manual.ID = 50
	repo.depts[50] = manual

	_, err := svc.Import(context.Background(), []ImportRow{{ID: 9, Name: "Fresh Import"}})
	require.NoError(t, err)

	assert.Equal(t, "Fresh Import", repo.depts[9].Name)
	assert.NotNil(t, repo.depts[50], "manually created rows survive re-import")
}

func TestTree_ReturnsSubtree(t *testing.T) {
	repo := newFakeDeptRepo()
	svc := NewService(repo, fakeTx{})

	add := func(deptID, pid id.ID, name string) {
		d := &Dept{Name: name, PID: pid}
		d.ID = deptID
		repo.depts[deptID] = d
	}
	add(1, 0, "Head Office")
	add(2, 1, "Engineering")
	add(3, 2, "Team A")
	add(4, 0, "Sales")

	forest, err := svc.Tree(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, forest, 2)

	sub, err := svc.Tree(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, sub, 1)
	assert.Equal(t, "Engineering", sub[0].Name)
	require.Len(t, sub[0].Children, 1)
	assert.Equal(t, "Team A", sub[0].Children[0].Name)

	missing, err := svc.Tree(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestDelete_SecondCallReportsNotFound(t *testing.T) {
	repo := newFakeDeptRepo()
	svc := NewService(repo, fakeTx{})

	d := &Dept{Name: "Temp"}
	d.ID = 7
	repo.depts[7] = d

	require.NoError(t, svc.Delete(context.Background(), 7))
	err := svc.Delete(context.Background(), 7)
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdate_RejectsSelfParent(t *testing.T) {
	repo := newFakeDeptRepo()
	svc := NewService(repo, fakeTx{})

	d := &Dept{Name: "Engineering"}
	d.Base = entity.NewBase("tester")
	d.ID = 2
	repo.depts[2] = d

	_, err := svc.Update(context.Background(), 2, &Dept{PID: 2})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
