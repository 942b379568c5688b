package employees

import (
	"context"
	"sort"
	"strings"
	"sync"

	"bakery-platform/internal/audit"
)

// MemoryRepo is an in-memory repository for tests. Audit records ride along
// with saves the way the Postgres repository commits them transactionally.
type MemoryRepo struct {
	mu        sync.Mutex
	employees map[string]Employee
	audits    *audit.MemoryRepo
}

func NewMemoryRepo(audits *audit.MemoryRepo) *MemoryRepo {
	return &MemoryRepo{employees: make(map[string]Employee), audits: audits}
}

func (r *MemoryRepo) Create(ctx context.Context, e Employee, rec *audit.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees[e.ID] = e
	return r.append(ctx, rec)
}

func (r *MemoryRepo) Update(ctx context.Context, e Employee, rec *audit.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.employees[e.ID]; !ok {
		return ErrNotFound
	}
	r.employees[e.ID] = e
	return r.append(ctx, rec)
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return Employee{}, ErrNotFound
	}
	return e, nil
}

func (r *MemoryRepo) GetByCode(ctx context.Context, code string) (Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.employees {
		if e.EmployeeCode == code {
			return e, nil
		}
	}
	return Employee{}, ErrNotFound
}

func (r *MemoryRepo) List(ctx context.Context, f ListFilter) ([]Employee, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []Employee
	for _, e := range r.employees {
		if f.BranchID != "" && e.BranchID != f.BranchID {
			continue
		}
		if f.Status != nil && e.Status != *f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(f.Search)) {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	total := len(matched)
	start := (f.Page - 1) * f.PerPage
	if start >= total {
		return []Employee{}, total, nil
	}
	end := start + f.PerPage
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *MemoryRepo) append(ctx context.Context, rec *audit.Record) error {
	if rec == nil || r.audits == nil {
		return nil
	}
	return r.audits.Append(ctx, *rec)
}
