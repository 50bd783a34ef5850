package mfa

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AttemptStore tracks the per-principal failed-MFA-attempt counter backing
// the "mfa_attempts:<userId>" cache keyspace.
type AttemptStore interface {
	// Increment bumps the counter for principal, setting ttl on first
	// increment, and returns the new count.
	Increment(ctx context.Context, principal uuid.UUID, ttl time.Duration) (int, error)
	// Reset clears the counter for principal.
	Reset(ctx context.Context, principal uuid.UUID) error
}

// RedisAttemptStore is an AttemptStore backed by go-redis INCR/EXPIRE.
type RedisAttemptStore struct {
	client *redis.Client
}

func NewRedisAttemptStore(client *redis.Client) *RedisAttemptStore {
	return &RedisAttemptStore{client: client}
}

func attemptKey(principal uuid.UUID) string {
	return "mfa_attempts:" + principal.String()
}

func (s *RedisAttemptStore) Increment(ctx context.Context, principal uuid.UUID, ttl time.Duration) (int, error) {
	key := attemptKey(principal)
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 && ttl > 0 {
		if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
			return int(count), err
		}
	}
	return int(count), nil
}

func (s *RedisAttemptStore) Reset(ctx context.Context, principal uuid.UUID) error {
	return s.client.Del(ctx, attemptKey(principal)).Err()
}
