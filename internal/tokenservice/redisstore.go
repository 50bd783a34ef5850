package tokenservice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisDenylist is a Denylist backed by the redis:<jti> -> "1" keyspace
// entry "denylist:<jti>".
type RedisDenylist struct {
	client *redis.Client
}

// NewRedisDenylist builds a Denylist on top of an existing go-redis client.
func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{client: client}
}

func denylistKey(jti string) string {
	return "denylist:" + jti
}

func (d *RedisDenylist) Add(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Second
	}
	return d.client.Set(ctx, denylistKey(jti), "1", ttl).Err()
}

func (d *RedisDenylist) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, denylistKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RedisRefreshRegistry is a RefreshRegistry backed by two keyspaces:
// "refresh:<jti>" (value: subject id, TTL: remaining lifetime) and
// "refresh_subject:<subjectId>" (a set of outstanding JTIs for that
// subject, used only for RevokeAllForSubject).
type RedisRefreshRegistry struct {
	client *redis.Client
}

func NewRedisRefreshRegistry(client *redis.Client) *RedisRefreshRegistry {
	return &RedisRefreshRegistry{client: client}
}

func refreshKey(jti string) string {
	return "refresh:" + jti
}

func refreshSubjectKey(subject uuid.UUID) string {
	return "refresh_subject:" + subject.String()
}

func (r *RedisRefreshRegistry) Register(ctx context.Context, jti string, subject uuid.UUID, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Second
	}
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, refreshKey(jti), subject.String(), ttl)
	pipe.SAdd(ctx, refreshSubjectKey(subject), jti)
	pipe.Expire(ctx, refreshSubjectKey(subject), ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisRefreshRegistry) Lookup(ctx context.Context, jti string) (uuid.UUID, bool, error) {
	val, err := r.client.Get(ctx, refreshKey(jti)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	subject, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false, err
	}
	return subject, true, nil
}

func (r *RedisRefreshRegistry) Consume(ctx context.Context, jti string) (bool, error) {
	subject, found, err := r.Lookup(ctx, jti)
	if err != nil || !found {
		return false, err
	}
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, refreshKey(jti))
	pipe.SRem(ctx, refreshSubjectKey(subject), jti)
	_, err = pipe.Exec(ctx)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisRefreshRegistry) RevokeAllForSubject(ctx context.Context, subject uuid.UUID) error {
	jtis, err := r.client.SMembers(ctx, refreshSubjectKey(subject)).Result()
	if err != nil {
		return err
	}
	if len(jtis) == 0 {
		return nil
	}

	pipe := r.client.TxPipeline()
	for _, jti := range jtis {
		pipe.Del(ctx, refreshKey(jti))
	}
	pipe.Del(ctx, refreshSubjectKey(subject))
	_, err = pipe.Exec(ctx)
	return err
}
