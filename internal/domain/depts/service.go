package depts

import (
	"context"
	"fmt"

	"dario.cat/mergo"

	appctx "atlas/internal/core/context"
	"atlas/internal/core/apperror"
	"atlas/internal/core/entity"
	"atlas/internal/core/id"
	"atlas/internal/core/tenant"
	"atlas/internal/core/tree"
	"atlas/internal/core/tx"
	"atlas/internal/domain"
	"atlas/pkg/logger"
)

// importTag marks rows created by a bulk import so a re-import can
// replace them.
const importTag = "bulk import"

// Service provides department business logic.
type Service struct {
	repo Repository
	txm  tx.Manager
}

// NewService creates a department service.
func NewService(repo Repository, txm tx.Manager) *Service {
	return &Service{repo: repo, txm: txm}
}

// Create adds a department in the current tenant scope.
func (s *Service) Create(ctx context.Context, d *Dept) (id.ID, error) {
	if err := d.Validate(ctx); err != nil {
		return 0, err
	}
	d.Base = entity.NewBase(appctx.GetUsername(ctx))
	d.SetTenant(tenant.GetTenantID(ctx))
	return s.repo.Create(ctx, d)
}

// Get returns a department by ID.
func (s *Service) Get(ctx context.Context, deptID id.ID) (*Dept, error) {
	return s.repo.GetByID(ctx, deptID)
}

// List returns every live department as a flat slice.
func (s *Service) List(ctx context.Context) ([]*Dept, error) {
	return s.repo.ListAll(ctx)
}

// Update patches mutable department fields.
func (s *Service) Update(ctx context.Context, deptID id.ID, patch *Dept) (*Dept, error) {
	current, err := s.repo.GetByID(ctx, deptID)
	if err != nil {
		return nil, err
	}

	if err := mergo.Merge(current, patch, mergo.WithOverride); err != nil {
		return nil, apperror.NewInternal(err)
	}
	current.ID = deptID
	if err := current.Validate(ctx); err != nil {
		return nil, err
	}
	current.Touch(appctx.GetUsername(ctx))

	if err := s.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// Delete soft-deletes a department. Repeated deletion reports NotFound.
func (s *Service) Delete(ctx context.Context, deptID id.ID) error {
	return s.repo.SoftDelete(ctx, deptID)
}

// Tree returns the whole department forest. When deptID is non-zero only
// the subtree rooted at that department is returned; a missing ID yields
// an empty forest.
func (s *Service) Tree(ctx context.Context, deptID id.ID) ([]*Dept, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	forest := tree.Build(items)
	if deptID.IsZero() {
		return forest, nil
	}

	sub, ok := tree.Find(forest, deptID.Int64(), func(d *Dept) []*Dept { return d.Children })
	if !ok {
		return []*Dept{}, nil
	}
	return []*Dept{sub}, nil
}

// Import replaces the previously imported departments with the given rows.
//
// Rows are created first with their source IDs, then parent references are
// remapped and levels derived from the parent chain. Bad rows are skipped
// and reported; the rest of the batch still lands.
func (s *Service) Import(ctx context.Context, rows []ImportRow) (*domain.BulkImportResult, error) {
	res := &domain.BulkImportResult{Errors: []string{}}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteByRemarkTag(ctx, importTag); err != nil {
			return fmt.Errorf("clear previous import: %w", err)
		}

		by := appctx.GetUsername(ctx)

		// First pass: create nodes, remember which source IDs landed.
		created := make(map[int64]id.ID, len(rows))
		for _, row := range rows {
			if row.Name == "" || row.ID == 0 {
				res.ErrorCount++
				res.Errors = append(res.Errors, fmt.Sprintf("department %d: missing id or name", row.ID))
				continue
			}

			d := &Dept{
				Name:   row.Name,
				Leader: row.Leader,
				Level:  1,
				Status: 0,
				Remark: fmt.Sprintf("%s - source id %d", importTag, row.ID),
			}
			d.Base = entity.NewBase(by)
			d.SetTenant(tenant.GetTenantID(ctx))
			d.ID = id.ID(row.ID)

			if err := s.repo.CreateWithID(ctx, d); err != nil {
				res.ErrorCount++
				res.Errors = append(res.Errors, fmt.Sprintf("department %d: %v", row.ID, err))
				continue
			}
			created[row.ID] = d.ID
			res.SuccessCount++
		}

		// Second pass: attach parents and derive levels.
		levels := make(map[int64]int, len(created))
		var attach func(row ImportRow) int
		byID := make(map[int64]ImportRow, len(rows))
		for _, row := range rows {
			byID[row.ID] = row
		}
		attach = func(row ImportRow) int {
			if lvl, ok := levels[row.ID]; ok {
				return lvl
			}
			lvl := 1
			if parent, ok := byID[row.ParentID]; ok {
				if _, landed := created[row.ParentID]; landed && row.ParentID != row.ID {
					lvl = attach(parent) + 1
				}
			}
			levels[row.ID] = lvl
			return lvl
		}

		for _, row := range rows {
			deptID, ok := created[row.ID]
			if !ok {
				continue
			}

			pid := id.Root
			if _, landed := created[row.ParentID]; landed && row.ParentID != row.ID {
				pid = id.ID(row.ParentID)
			}

			if err := s.repo.UpdateParent(ctx, deptID, pid, attach(row)); err != nil {
				res.ErrorCount++
				res.Errors = append(res.Errors, fmt.Sprintf("department %d: link parent: %v", row.ID, err))
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "department import finished",
		"success", res.SuccessCount,
		"errors", res.ErrorCount,
	)
	return res, nil
}
