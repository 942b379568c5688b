// Package otp issues and verifies short-lived numeric one-time passwords for
// the password reset flow.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

var (
	ErrMismatch = errors.New("otp: code does not match")
	ErrExpired  = errors.New("otp: code expired or never issued")
)

// Store holds issued codes keyed by identifier until they expire.
type Store interface {
	Set(ctx context.Context, identifier, code string, ttl time.Duration) error
	Get(ctx context.Context, identifier string) (string, error)
	Delete(ctx context.Context, identifier string) error
}

type Service struct {
	store  Store
	length int
	ttl    time.Duration
}

func NewService(store Store, length int, ttl time.Duration) *Service {
	if length <= 0 {
		length = 6
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Service{store: store, length: length, ttl: ttl}
}

// Issue generates a fresh code for the identifier, replacing any outstanding
// one, and stores it with the configured TTL.
func (s *Service) Issue(ctx context.Context, identifier string) (string, error) {
	code, err := generate(s.length)
	if err != nil {
		return "", err
	}
	if err := s.store.Set(ctx, identifier, code, s.ttl); err != nil {
		return "", fmt.Errorf("otp: store: %w", err)
	}
	return code, nil
}

// Validate checks the submitted code and consumes it on success. A consumed
// or expired code cannot be replayed.
func (s *Service) Validate(ctx context.Context, identifier, code string) error {
	stored, err := s.store.Get(ctx, identifier)
	if err != nil {
		return err
	}
	if stored != code {
		return ErrMismatch
	}
	return s.store.Delete(ctx, identifier)
}

// Clear discards any outstanding code for the identifier.
func (s *Service) Clear(ctx context.Context, identifier string) error {
	return s.store.Delete(ctx, identifier)
}

func generate(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("otp: generate: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
