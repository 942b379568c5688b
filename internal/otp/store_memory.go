package otp

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for tests, with an injectable clock for
// expiry checks.
type MemoryStore struct {
	mu    sync.Mutex
	codes map[string]entry
	Clock func() time.Time
}

type entry struct {
	code      string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{codes: make(map[string]entry), Clock: time.Now}
}

func (s *MemoryStore) Set(ctx context.Context, identifier, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[identifier] = entry{code: code, expiresAt: s.Clock().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, identifier string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.codes[identifier]
	if !ok || s.Clock().After(e.expiresAt) {
		delete(s.codes, identifier)
		return "", ErrExpired
	}
	return e.code, nil
}

func (s *MemoryStore) Delete(ctx context.Context, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, identifier)
	return nil
}
