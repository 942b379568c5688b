package employees

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"bakery-platform/internal/audit"
	"bakery-platform/internal/status"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("employees: not found")
	ErrInvalidArgument = errors.New("employees: invalid argument")
	ErrDuplicateCode   = errors.New("employees: employee code already exists")
)

// Repository is the persistence contract. Create/Update take the audit record
// produced by the recorder (nil when emission was suppressed) so the entity
// save and its audit entry commit together.
type Repository interface {
	Create(ctx context.Context, e Employee, rec *audit.Record) error
	Update(ctx context.Context, e Employee, rec *audit.Record) error
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)
	List(ctx context.Context, f ListFilter) ([]Employee, int, error)
}

// DesignationLookup resolves a designation name to its id during imports.
type DesignationLookup interface {
	IDByName(ctx context.Context, name string) (string, bool, error)
}

// BranchLookup resolves a branch code to its id during imports.
type BranchLookup interface {
	IDByCode(ctx context.Context, code string) (string, bool, error)
}

type Service struct {
	repo         Repository
	recorder     *audit.Recorder
	auditLog     *audit.Service
	designations DesignationLookup
	branches     BranchLookup
	clock        func() time.Time
}

func NewService(repo Repository, recorder *audit.Recorder, auditLog *audit.Service, designations DesignationLookup, branches BranchLookup) *Service {
	return &Service{
		repo:         repo,
		recorder:     recorder,
		auditLog:     auditLog,
		designations: designations,
		branches:     branches,
		clock:        time.Now,
	}
}

var mobileRe = regexp.MustCompile(`^\d{10}$`)

func (s *Service) Create(ctx context.Context, req CreateRequest) (Employee, error) {
	if req.EmployeeCode == "" || req.Name == "" || req.DesignationID == "" || req.BranchID == "" {
		return Employee{}, ErrInvalidArgument
	}
	if !mobileRe.MatchString(req.Mobile) {
		return Employee{}, fmt.Errorf("%w: mobile must be 10 digits", ErrInvalidArgument)
	}
	if _, err := s.repo.GetByCode(ctx, req.EmployeeCode); err == nil {
		return Employee{}, ErrDuplicateCode
	} else if !errors.Is(err, ErrNotFound) {
		return Employee{}, err
	}

	now := s.clock().UTC()
	e := Employee{
		ID:            uuid.NewString(),
		EmployeeCode:  req.EmployeeCode,
		Name:          req.Name,
		Mobile:        req.Mobile,
		DesignationID: req.DesignationID,
		BranchID:      req.BranchID,
		Status:        status.Active,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	rec := recordPtr(s.recorder.Creation(ctx, Table, e.ID))
	if err := s.repo.Create(ctx, e, rec); err != nil {
		return Employee{}, err
	}
	return e, nil
}

// Update applies the provided fields and audits the dirty set.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Employee, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Employee{}, err
	}

	var changes audit.ChangeSet
	if req.Name != nil && *req.Name != e.Name {
		changes = append(changes, audit.Change{Field: "name", Old: e.Name, New: *req.Name})
		e.Name = *req.Name
	}
	if req.Mobile != nil && *req.Mobile != e.Mobile {
		if !mobileRe.MatchString(*req.Mobile) {
			return Employee{}, fmt.Errorf("%w: mobile must be 10 digits", ErrInvalidArgument)
		}
		changes = append(changes, audit.Change{Field: "mobile", Old: e.Mobile, New: *req.Mobile})
		e.Mobile = *req.Mobile
	}
	if req.DesignationID != nil && *req.DesignationID != e.DesignationID {
		changes = append(changes, audit.Change{Field: "designation_id", Old: e.DesignationID, New: *req.DesignationID})
		e.DesignationID = *req.DesignationID
	}
	if req.BranchID != nil && *req.BranchID != e.BranchID {
		changes = append(changes, audit.Change{Field: "branch_id", Old: e.BranchID, New: *req.BranchID})
		e.BranchID = *req.BranchID
	}
	if len(changes) == 0 {
		return e, nil
	}

	e.UpdatedAt = s.clock().UTC()
	rec := recordPtr(s.recorder.Update(ctx, Table, e.ID, changes))
	if err := s.repo.Update(ctx, e, rec); err != nil {
		return Employee{}, err
	}
	return e, nil
}

// UpdateStatus moves the tri-state flag. Soft delete, disable and enable all
// run through here; the recorder maps them to their audit actions.
func (s *Service) UpdateStatus(ctx context.Context, id string, newStatus status.Status) (Employee, error) {
	if !newStatus.Valid() {
		return Employee{}, ErrInvalidArgument
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	if e.Status == newStatus {
		return e, nil
	}

	changes := audit.ChangeSet{{Field: "status", Old: e.Status, New: newStatus}}
	e.Status = newStatus
	e.UpdatedAt = s.clock().UTC()

	rec := recordPtr(s.recorder.Update(ctx, Table, e.ID, changes))
	if err := s.repo.Update(ctx, e, rec); err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Employee, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Employee, int, error) {
	return s.repo.List(ctx, f.withDefaults())
}

// Import creates employees from parsed spreadsheet rows:
// employee_code, name, mobile, designation name, branch code. The first row is
// a header. Individual creates run under the bulk gate; one import summary
// audit record is written afterwards if anything was created.
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
		code, name, mobile := cell(0), cell(1), cell(2)
		designationName, branchCode := cell(3), cell(4)

		rowErrs := map[string]string{}
		if name == "" {
			rowErrs["name"] = "name is required"
		}
		if mobile == "" {
			rowErrs["mobile"] = "mobile is required"
		} else if !mobileRe.MatchString(mobile) {
			rowErrs["mobile"] = "mobile must be 10 digits"
		}

		designationID, ok, err := s.designations.IDByName(ctx, designationName)
		if err != nil {
			return res, err
		}
		if !ok {
			rowErrs["designation_id"] = "designation does not exist"
		}
		branchID, ok, err := s.branches.IDByCode(ctx, branchCode)
		if err != nil {
			return res, err
		}
		if !ok {
			rowErrs["branch_id"] = "branch does not exist"
		}
		if _, err := s.repo.GetByCode(ctx, code); err == nil {
			rowErrs["employee_code"] = "employee code already exists"
		} else if !errors.Is(err, ErrNotFound) {
			return res, err
		}

		if len(rowErrs) > 0 {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Errors: rowErrs})
			continue
		}

		now := s.clock().UTC()
		e := Employee{
			ID:            uuid.NewString(),
			EmployeeCode:  code,
			Name:          name,
			Mobile:        mobile,
			DesignationID: designationID,
			BranchID:      branchID,
			Status:        status.Active,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		// Suppressed by the gate; rec stays nil.
		rec := recordPtr(s.recorder.Creation(bulkCtx, Table, e.ID))
		if err := s.repo.Create(ctx, e, rec); err != nil {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Errors: map[string]string{
				"database": "failed to create employee: " + err.Error(),
			}})
			continue
		}
		res.Imported++
		res.ImportedIDs = append(res.ImportedIDs, e.ID)
	}

	if err := s.auditLog.AppendImportSummary(ctx, Table, fileName, res.ImportedIDs, toAuditRowErrors(res.Errors)); err != nil {
		return res, fmt.Errorf("employees: import summary: %w", err)
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
