package audit

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory append-only repository useful for tests.
// It is not intended for production use.
type MemoryRepo struct {
	mu         sync.Mutex
	records    []Record
	performers map[string]Performer
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{performers: make(map[string]Performer)}
}

func (r *MemoryRepo) Append(ctx context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

// SetPerformer registers a resolvable acting user for query results.
func (r *MemoryRepo) SetPerformer(id, name, role string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.performers[id] = Performer{ID: &id, Name: name, Role: role}
}

// Records returns a copy of everything appended, in insertion order.
func (r *MemoryRepo) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

func (r *MemoryRepo) Query(ctx context.Context, f Filter) ([]RecordWithPerformer, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []RecordWithPerformer
	for _, rec := range r.records {
		if !r.matches(rec, f) {
			continue
		}
		matched = append(matched, RecordWithPerformer{Record: rec, Performer: r.resolve(rec.PerformedBy)})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (f.Page - 1) * f.PerPage
	if start >= total {
		return []RecordWithPerformer{}, total, nil
	}
	end := start + f.PerPage
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *MemoryRepo) DistinctTables(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{})
	for _, rec := range r.records {
		seen[rec.Table] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for tbl := range seen {
		out = append(out, tbl)
	}
	sort.Strings(out)
	return out, nil
}

func (r *MemoryRepo) matches(rec Record, f Filter) bool {
	if f.Action != "" && rec.Action != f.Action {
		return false
	}
	if f.Table != "" && rec.Table != f.Table {
		return false
	}
	if f.RecordID != "" && rec.RecordID != f.RecordID {
		return false
	}
	// Inclusive by calendar date, matching the query contract.
	if f.StartDate != nil && rec.CreatedAt.Format("2006-01-02") < f.StartDate.Format("2006-01-02") {
		return false
	}
	if f.EndDate != nil && rec.CreatedAt.Format("2006-01-02") > f.EndDate.Format("2006-01-02") {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		p := r.resolve(rec.PerformedBy)
		if !strings.Contains(strings.ToLower(rec.Description), q) &&
			!strings.Contains(strings.ToLower(rec.Comments), q) &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Role), q) {
			return false
		}
	}
	return true
}

func (r *MemoryRepo) resolve(performedBy *string) Performer {
	if performedBy != nil {
		if p, ok := r.performers[*performedBy]; ok {
			return p
		}
	}
	return DeletedPerformer()
}
