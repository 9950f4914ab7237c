package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "atlas/internal/core/context"
	"atlas/internal/core/id"
	"atlas/internal/core/tenant"
	"atlas/internal/domain"
)

type fakeAuditRepo struct {
	inserted []*Entry
	cutoff   time.Time
	purged   int64
}

func (r *fakeAuditRepo) Insert(ctx context.Context, e *Entry) error {
	r.inserted = append(r.inserted, e)
	return nil
}

func (r *fakeAuditRepo) Page(ctx context.Context, page domain.PageQuery, q PageQuery) (domain.PageResult[*Entry], error) {
	return domain.EmptyPage[*Entry](page), nil
}

func (r *fakeAuditRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	r.cutoff = cutoff
	return r.purged, nil
}

func TestRecord_FillsActorAndTenantFromContext(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewService(repo)

	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID:   3,
		Username: "alice",
	})
	ctx = tenant.WithTenant(ctx, &tenant.Info{ID: 7, Status: tenant.StatusNormal})

	svc.Record(ctx, &Entry{Method: "POST", Path: "/api/v1/system/users"})

	require.Len(t, repo.inserted, 1)
	e := repo.inserted[0]
	assert.Equal(t, id.ID(3), e.UserID)
	assert.Equal(t, "alice", e.Username)
	require.NotNil(t, e.TenantID)
	assert.Equal(t, id.ID(7), *e.TenantID)
	assert.False(t, e.CreateTime.IsZero())
}

func TestPurge_CutoffMatchesRetention(t *testing.T) {
	repo := &fakeAuditRepo{purged: 12}
	svc := NewService(repo)

	retention := 90 * 24 * time.Hour
	n, err := svc.Purge(context.Background(), retention)
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)

	want := time.Now().UTC().Add(-retention)
	assert.WithinDuration(t, want, repo.cutoff, 5*time.Second)
}
