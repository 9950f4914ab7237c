package audit

import (
	"context"
	"time"

	appctx "atlas/internal/core/context"
	"atlas/internal/core/id"
	"atlas/internal/core/tenant"
	"atlas/internal/domain"
	"atlas/pkg/logger"
)

// Service provides audit log business logic.
type Service struct {
	repo Repository
}

// NewService creates an audit service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record stores an entry, filling actor and tenant from the context.
// Failures are logged and swallowed so auditing never breaks the request.
func (s *Service) Record(ctx context.Context, e *Entry) {
	if user := appctx.GetUser(ctx); user != nil {
		if e.UserID.IsZero() {
			e.UserID = user.UserID
		}
		if e.Username == "" {
			e.Username = user.Username
		}
	}
	if e.TenantID == nil {
		if tid := tenant.GetTenantID(ctx); tid != 0 {
			t := id.ID(tid)
			e.TenantID = &t
		}
	}
	if e.CreateTime.IsZero() {
		e.CreateTime = time.Now().UTC()
	}

	if err := s.repo.Insert(ctx, e); err != nil {
		logger.Error(ctx, "failed to record audit entry", "path", e.Path, "error", err)
	}
}

// Page lists entries with filters.
func (s *Service) Page(ctx context.Context, page domain.PageQuery, q PageQuery) (domain.PageResult[*Entry], error) {
	return s.repo.Page(ctx, page, q)
}

// Purge removes entries older than the retention window and returns the
// number deleted.
func (s *Service) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	return s.repo.DeleteBefore(ctx, time.Now().UTC().Add(-retention))
}
