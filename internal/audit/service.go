package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"bakery-platform/internal/auth"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit records.
// Append-only: there is no way to update or delete a record.
type Repository interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, f Filter) ([]RecordWithPerformer, int, error)
	DistinctTables(ctx context.Context) ([]string, error)
}

var (
	ErrInvalidRecord = errors.New("audit: invalid record")
	ErrInvalidFilter = errors.New("audit: invalid filter")
)

// Service is the audit store: append-only writes plus the filtered queries the
// audit log UI needs.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

// Append validates and inserts one record. Storage failures surface to the
// caller; they are never silently dropped.
func (s *Service) Append(ctx context.Context, rec Record) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if rec.Action == "" || rec.Table == "" || rec.RecordID == "" {
		return ErrInvalidRecord
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, rec)
}

// AppendImportSummary writes the single record summarizing a bulk import.
// No record is written when nothing was imported; the record_id references the
// first imported row, with the full id list carried in the comments payload.
func (s *Service) AppendImportSummary(ctx context.Context, table, fileName string, importedIDs []string, rowErrors []ImportRowError) error {
	if len(importedIDs) == 0 {
		return nil
	}
	if rowErrors == nil {
		rowErrors = []ImportRowError{}
	}

	comments, err := json.Marshal(ImportSummary{
		TotalImported: len(importedIDs),
		ImportedIDs:   importedIDs,
		FileName:      fileName,
		Errors:        rowErrors,
	})
	if err != nil {
		return fmt.Errorf("audit: marshal import summary: %w", err)
	}

	rec := Record{
		Action:      ActionImport,
		Table:       table,
		RecordID:    importedIDs[0],
		Description: fmt.Sprintf("Imported %d %s from file: %s", len(importedIDs), table, fileName),
		Comments:    string(comments),
	}
	if uid, err := auth.UserID(ctx); err == nil {
		rec.PerformedBy = &uid
	}
	return s.Append(ctx, rec)
}

// Query returns one page of records, newest first, plus the total match count.
func (s *Service) Query(ctx context.Context, f Filter) ([]RecordWithPerformer, int, error) {
	if s.repo == nil {
		return nil, 0, errors.New("audit: repository not configured")
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return nil, 0, ErrInvalidFilter
	}
	return s.repo.Query(ctx, f.withDefaults())
}

// TableOption is a distinct table entry for UI filter population.
type TableOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DistinctTables lists the tables audit records have been written for.
func (s *Service) DistinctTables(ctx context.Context) ([]TableOption, error) {
	if s.repo == nil {
		return nil, errors.New("audit: repository not configured")
	}
	tables, err := s.repo.DistinctTables(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TableOption, 0, len(tables))
	for _, tbl := range tables {
		out = append(out, TableOption{ID: tbl, Name: titleCaseTable(tbl)})
	}
	return out, nil
}

func titleCaseTable(table string) string {
	words := strings.Split(strings.ReplaceAll(table, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
