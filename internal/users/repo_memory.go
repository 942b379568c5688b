package users

import (
	"context"
	"sync"

	"bakery-platform/internal/audit"
)

// MemoryRepo is an in-memory repository for tests. When an audit store is
// attached, saved users are also registered as performers so audit queries
// can resolve them.
type MemoryRepo struct {
	mu     sync.Mutex
	users  map[string]User
	audits *audit.MemoryRepo
}

func NewMemoryRepo(audits *audit.MemoryRepo) *MemoryRepo {
	return &MemoryRepo{users: make(map[string]User), audits: audits}
}

func (r *MemoryRepo) Create(ctx context.Context, u User, rec *audit.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	if r.audits != nil {
		r.audits.SetPerformer(u.ID, u.Name, u.Role)
	}
	return r.append(ctx, rec)
}

func (r *MemoryRepo) Update(ctx context.Context, u User, rec *audit.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	r.users[u.ID] = u
	if r.audits != nil {
		r.audits.SetPerformer(u.ID, u.Name, u.Role)
	}
	return r.append(ctx, rec)
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *MemoryRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) append(ctx context.Context, rec *audit.Record) error {
	if rec == nil || r.audits == nil {
		return nil
	}
	return r.audits.Append(ctx, *rec)
}
