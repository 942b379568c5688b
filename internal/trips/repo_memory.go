package trips

import (
	"context"
	"sort"
	"sync"
	"time"

	"bakery-platform/internal/audit"
)

// MemoryRepo is an in-memory repository for tests. Item names for aggregates
// come from an injected lookup since this repo holds no item rows.
type MemoryRepo struct {
	mu     sync.Mutex
	trips  map[string]Trip
	stock  map[string][]StockItem
	audits *audit.MemoryRepo
	names  ItemNameLookup
}

func NewMemoryRepo(audits *audit.MemoryRepo, names ItemNameLookup) *MemoryRepo {
	return &MemoryRepo{
		trips:  make(map[string]Trip),
		stock:  make(map[string][]StockItem),
		audits: audits,
		names:  names,
	}
}

func (r *MemoryRepo) Create(ctx context.Context, t Trip, items []StockItem, rec *audit.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trips[t.ID] = t
	r.stock[t.ID] = append([]StockItem(nil), items...)
	if rec == nil || r.audits == nil {
		return nil
	}
	return r.audits.Append(ctx, *rec)
}

func (r *MemoryRepo) GetDetails(ctx context.Context, tripID string) (TripDetails, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trips[tripID]
	if !ok {
		return TripDetails{}, ErrNotFound
	}
	return TripDetails{Trip: t, Items: append([]StockItem(nil), r.stock[tripID]...)}, nil
}

func (r *MemoryRepo) ItemTotalsByDate(ctx context.Context, branchID string, date time.Time) ([]ItemTotal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := date.Format("2006-01-02")
	totals := map[string]float64{}
	for id, t := range r.trips {
		if t.BranchID != branchID || t.Date.Format("2006-01-02") != day {
			continue
		}
		for _, line := range r.stock[id] {
			name := line.ItemID
			if r.names != nil {
				if n, ok, err := r.names.NameByID(ctx, line.ItemID); err != nil {
					return nil, err
				} else if ok {
					name = n
				}
			}
			totals[name] += line.Quantity
		}
	}

	out := make([]ItemTotal, 0, len(totals))
	for name, qty := range totals {
		out = append(out, ItemTotal{ItemName: name, TotalQuantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemName < out[j].ItemName })
	return out, nil
}
