package designations

import (
	"context"
	"sort"
	"strings"
	"sync"

	"bakery-platform/internal/audit"
	"bakery-platform/internal/status"
)

// MemoryRepo is an in-memory repository for tests.
type MemoryRepo struct {
	mu           sync.Mutex
	designations map[string]Designation
	audits       *audit.MemoryRepo
}

func NewMemoryRepo(audits *audit.MemoryRepo) *MemoryRepo {
	return &MemoryRepo{designations: make(map[string]Designation), audits: audits}
}

func (r *MemoryRepo) Create(ctx context.Context, d Designation, rec *audit.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.designations[d.ID] = d
	return r.append(ctx, rec)
}

func (r *MemoryRepo) Update(ctx context.Context, d Designation, rec *audit.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.designations[d.ID]; !ok {
		return ErrNotFound
	}
	r.designations[d.ID] = d
	return r.append(ctx, rec)
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Designation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.designations[id]
	if !ok {
		return Designation{}, ErrNotFound
	}
	return d, nil
}

func (r *MemoryRepo) GetByName(ctx context.Context, name string) (Designation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.designations {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	return Designation{}, ErrNotFound
}

func (r *MemoryRepo) List(ctx context.Context, f ListFilter) ([]Designation, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []Designation
	for _, d := range r.designations {
		if f.Status != nil && d.Status != *f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(d.Name), strings.ToLower(f.Search)) {
			continue
		}
		matched = append(matched, d)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	total := len(matched)
	start := (f.Page - 1) * f.PerPage
	if start >= total {
		return []Designation{}, total, nil
	}
	end := start + f.PerPage
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *MemoryRepo) ActiveOptions(ctx context.Context) ([]Option, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Option
	for _, d := range r.designations {
		if d.Status == status.Active {
			out = append(out, Option{ID: d.ID, Name: d.Name})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepo) append(ctx context.Context, rec *audit.Record) error {
	if rec == nil || r.audits == nil {
		return nil
	}
	return r.audits.Append(ctx, *rec)
}
