package branches

import (
	"context"
	"sort"
	"strings"
	"sync"

	"bakery-platform/internal/status"
)

// MemoryRepo is an in-memory repository for tests.
type MemoryRepo struct {
	mu       sync.Mutex
	branches map[string]Branch
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{branches: make(map[string]Branch)}
}

func (r *MemoryRepo) Create(ctx context.Context, b Branch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.branches[b.ID] = b
	return nil
}

func (r *MemoryRepo) Update(ctx context.Context, b Branch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.branches[b.ID]; !ok {
		return ErrNotFound
	}
	r.branches[b.ID] = b
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.branches[id]
	if !ok {
		return Branch{}, ErrNotFound
	}
	return b, nil
}

func (r *MemoryRepo) GetByCode(ctx context.Context, code string) (Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.branches {
		if b.Code == code {
			return b, nil
		}
	}
	return Branch{}, ErrNotFound
}

func (r *MemoryRepo) List(ctx context.Context, f ListFilter) ([]Branch, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []Branch
	for _, b := range r.branches {
		if f.Status != nil && b.Status != *f.Status {
			continue
		}
		if f.Search != "" {
			needle := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(b.Name), needle) &&
				!strings.Contains(strings.ToLower(b.Code), needle) {
				continue
			}
		}
		matched = append(matched, b)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	total := len(matched)
	start := (f.Page - 1) * f.PerPage
	if start >= total {
		return []Branch{}, total, nil
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
	for _, b := range r.branches {
		if b.Status == status.Active {
			out = append(out, Option{ID: b.ID, Name: b.Name})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
