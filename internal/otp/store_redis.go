package otp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps codes in redis under otp:{identifier} so expiry is handled
// by key TTL.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func key(identifier string) string { return "otp:" + identifier }

func (s *RedisStore) Set(ctx context.Context, identifier, code string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key(identifier), code, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, identifier string) (string, error) {
	code, err := s.rdb.Get(ctx, key(identifier)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrExpired
	}
	if err != nil {
		return "", fmt.Errorf("otp: redis get: %w", err)
	}
	return code, nil
}

func (s *RedisStore) Delete(ctx context.Context, identifier string) error {
	return s.rdb.Del(ctx, key(identifier)).Err()
}
