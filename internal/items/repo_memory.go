package items

import (
	"context"
	"sort"
	"strings"
	"sync"

	"bakery-platform/internal/audit"
)

// MemoryRepo is an in-memory repository for tests.
type MemoryRepo struct {
	mu     sync.Mutex
	items  map[string]Item
	audits *audit.MemoryRepo
}

func NewMemoryRepo(audits *audit.MemoryRepo) *MemoryRepo {
	return &MemoryRepo{items: make(map[string]Item), audits: audits}
}

func (r *MemoryRepo) Create(ctx context.Context, it Item, rec *audit.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[it.ID] = it
	return r.append(ctx, rec)
}

func (r *MemoryRepo) Update(ctx context.Context, it Item, rec *audit.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[it.ID]; !ok {
		return ErrNotFound
	}
	r.items[it.ID] = it
	return r.append(ctx, rec)
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return Item{}, ErrNotFound
	}
	return it, nil
}

func (r *MemoryRepo) List(ctx context.Context, f ListFilter) ([]Item, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []Item
	for _, it := range r.items {
		if f.Status != nil && it.Status != *f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(f.Search)) {
			continue
		}
		matched = append(matched, it)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	total := len(matched)
	start := (f.Page - 1) * f.PerPage
	if start >= total {
		return []Item{}, total, nil
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
