package items

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bakery-platform/internal/audit"
	"bakery-platform/internal/status"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("items: not found")
	ErrInvalidArgument = errors.New("items: invalid argument")
)

// Repository is the persistence contract. Audit records ride with saves so an
// entity mutation and its audit entry commit together.
type Repository interface {
	Create(ctx context.Context, it Item, rec *audit.Record) error
	Update(ctx context.Context, it Item, rec *audit.Record) error
	GetByID(ctx context.Context, id string) (Item, error)
	List(ctx context.Context, f ListFilter) ([]Item, int, error)
}

type Service struct {
	repo     Repository
	recorder *audit.Recorder
	auditLog *audit.Service
	clock    func() time.Time
}

func NewService(repo Repository, recorder *audit.Recorder, auditLog *audit.Service) *Service {
	return &Service{repo: repo, recorder: recorder, auditLog: auditLog, clock: time.Now}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Item, error) {
	if req.Name == "" || req.Category == "" {
		return Item{}, ErrInvalidArgument
	}

	now := s.clock().UTC()
	it := Item{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Status:      status.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	rec := recordPtr(s.recorder.Creation(ctx, Table, it.ID))
	if err := s.repo.Create(ctx, it, rec); err != nil {
		return Item{}, err
	}
	return it, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Item{}, err
	}

	var changes audit.ChangeSet
	if req.Name != nil && *req.Name != it.Name {
		changes = append(changes, audit.Change{Field: "name", Old: it.Name, New: *req.Name})
		it.Name = *req.Name
	}
	if req.Category != nil && *req.Category != it.Category {
		changes = append(changes, audit.Change{Field: "category", Old: it.Category, New: *req.Category})
		it.Category = *req.Category
	}
	if req.Description != nil && *req.Description != it.Description {
		changes = append(changes, audit.Change{Field: "description", Old: it.Description, New: *req.Description})
		it.Description = *req.Description
	}
	if len(changes) == 0 {
		return it, nil
	}

	it.UpdatedAt = s.clock().UTC()
	rec := recordPtr(s.recorder.Update(ctx, Table, it.ID, changes))
	if err := s.repo.Update(ctx, it, rec); err != nil {
		return Item{}, err
	}
	return it, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, newStatus status.Status) (Item, error) {
	if !newStatus.Valid() {
		return Item{}, ErrInvalidArgument
	}
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Item{}, err
	}
	if it.Status == newStatus {
		return it, nil
	}

	changes := audit.ChangeSet{{Field: "status", Old: it.Status, New: newStatus}}
	it.Status = newStatus
	it.UpdatedAt = s.clock().UTC()

	rec := recordPtr(s.recorder.Update(ctx, Table, it.ID, changes))
	if err := s.repo.Update(ctx, it, rec); err != nil {
		return Item{}, err
	}
	return it, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Item, int, error) {
	return s.repo.List(ctx, f.withDefaults())
}

// NameByID resolves an item id to its name. Trip stock aggregation uses it
// to validate loads and label totals.
func (s *Service) NameByID(ctx context.Context, id string) (string, bool, error) {
	it, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return it.Name, true, nil
}

// Import creates items from parsed spreadsheet rows: name, category,
// description. The first row is a header. Creates run under the bulk gate; a
// single import summary audit record is written iff at least one row landed.
func (s *Service) Import(ctx context.Context, fileName string, rows [][]string) (ImportResult, error) {
	res := ImportResult{Errors: []RowError{}}
	bulkCtx := audit.WithBulk(ctx)

	for i, row := range rows {
		if i == 0 || len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		rowNum := i + 1

		cell := func(n int) string {
			if n < len(row) {
				return strings.TrimSpace(row[n])
			}
			return ""
		}
		name, category, description := cell(0), cell(1), cell(2)

		rowErrs := map[string]string{}
		if name == "" {
			rowErrs["name"] = "name is required"
		}
		if category == "" {
			rowErrs["category"] = "category is required"
		}
		if len(rowErrs) > 0 {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Errors: rowErrs})
			continue
		}

		now := s.clock().UTC()
		it := Item{
			ID:          uuid.NewString(),
			Name:        name,
			Category:    category,
			Description: description,
			Status:      status.Active,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		rec := recordPtr(s.recorder.Creation(bulkCtx, Table, it.ID))
		if err := s.repo.Create(ctx, it, rec); err != nil {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Errors: map[string]string{
				"database": "failed to create item: " + err.Error(),
			}})
			continue
		}
		res.Imported++
		res.ImportedIDs = append(res.ImportedIDs, it.ID)
	}

	if err := s.auditLog.AppendImportSummary(ctx, Table, fileName, res.ImportedIDs, toAuditRowErrors(res.Errors)); err != nil {
		return res, fmt.Errorf("items: import summary: %w", err)
	}
	return res, nil
}

func toAuditRowErrors(errs []RowError) []audit.ImportRowError {
	out := make([]audit.ImportRowError, 0, len(errs))
	for _, e := range errs {
		out = append(out, audit.ImportRowError{Row: e.Row, Errors: e.Errors})
	}
	return out
}

func recordPtr(rec audit.Record, ok bool) *audit.Record {
	if !ok {
		return nil
	}
	return &rec
}
