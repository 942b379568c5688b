package reporting

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory repository for tests, fed with plain counters
// shaped like the rows the postgres repo would see.
type MemoryRepo struct {
	mu        sync.Mutex
	employees []MemoryEmployee
	branches  int
	orders    []MemoryOrder
}

type MemoryEmployee struct {
	BranchID string
	Active   bool
}

type MemoryOrder struct {
	BranchID     string
	Pending      bool
	DeliveryDate time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) AddEmployee(e MemoryEmployee) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees = append(r.employees, e)
}

func (r *MemoryRepo) SetActiveBranches(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.branches = n
}

func (r *MemoryRepo) AddOrder(o MemoryOrder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, o)
}

func (r *MemoryRepo) ActiveEmployeeCount(ctx context.Context, branchID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.employees {
		if e.Active && (branchID == "" || e.BranchID == branchID) {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepo) ActiveBranchCount(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.branches, nil
}

func (r *MemoryRepo) PendingOrderCount(ctx context.Context, branchID string, dueFrom, dueOn *time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := func(t time.Time) string { return t.Format("2006-01-02") }
	n := 0
	for _, o := range r.orders {
		if !o.Pending {
			continue
		}
		if branchID != "" && o.BranchID != branchID {
			continue
		}
		if dueFrom != nil && day(o.DeliveryDate) < day(*dueFrom) {
			continue
		}
		if dueOn != nil && day(o.DeliveryDate) != day(*dueOn) {
			continue
		}
		n++
	}
	return n, nil
}
