package orders

import (
	"context"
	"sort"
	"sync"

	"bakery-platform/internal/audit"
)

// MemoryRepo is an in-memory repository for tests.
type MemoryRepo struct {
	mu     sync.Mutex
	orders map[string]Order
	audits *audit.MemoryRepo
}

func NewMemoryRepo(audits *audit.MemoryRepo) *MemoryRepo {
	return &MemoryRepo{orders: make(map[string]Order), audits: audits}
}

func (r *MemoryRepo) Create(ctx context.Context, o Order, rec *audit.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o
	return r.append(ctx, rec)
}

func (r *MemoryRepo) Update(ctx context.Context, o Order, rec *audit.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; !ok {
		return ErrNotFound
	}
	r.orders[o.ID] = o
	return r.append(ctx, rec)
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o, nil
}

func (r *MemoryRepo) List(ctx context.Context, f ListFilter) ([]Order, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []Order
	for _, o := range r.orders {
		if f.BranchID != "" && o.BranchID != f.BranchID {
			continue
		}
		if f.Status != nil && o.Status != *f.Status {
			continue
		}
		matched = append(matched, o)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].DeliveryDate.After(matched[j].DeliveryDate)
	})

	total := len(matched)
	start := (f.Page - 1) * f.PerPage
	if start >= total {
		return []Order{}, total, nil
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
