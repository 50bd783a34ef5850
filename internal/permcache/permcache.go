package permcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/juan-009/authguard/core/cache"
	"github.com/juan-009/authguard/pkg/broadcast"
)

// PermissionSet is a role's fully-expanded permission set: its own
// permissions unioned with every ancestor's.
type PermissionSet map[string]struct{}

const redisKeyPrefix = "role_permissions:"

// l1Entry pairs a permission set with the deadline it's good for, so that a
// role mutated on another node doesn't stay visible on this one beyond
// Config.TTL regardless of LRU capacity pressure.
type l1Entry struct {
	set       PermissionSet
	expiresAt time.Time
}

// Cache maps a role identifier to its expanded PermissionSet, with an
// in-process LRU (L1) in front of a Redis-shared layer (L2).
type Cache struct {
	cfg    Config
	l1     *cache.LRUCache[uuid.UUID, l1Entry]
	redis  *redis.Client
	events *broadcast.MemoryBroadcaster[uuid.UUID]

	mu          sync.RWMutex
	descendants map[uuid.UUID]map[uuid.UUID]struct{}
}

// New builds a Cache. redisClient may be nil to run L1-only (tests, or a
// deployment that has decided to accept cold-cache latency on restart).
func New(cfg Config, redisClient *redis.Client) *Cache {
	return &Cache{
		cfg:         cfg,
		l1:          cache.NewLRUCache[uuid.UUID, l1Entry](cfg.l1Capacity()),
		redis:       redisClient,
		events:      broadcast.NewMemoryBroadcaster[uuid.UUID](64),
		descendants: make(map[uuid.UUID]map[uuid.UUID]struct{}),
	}
}

// Subscribe returns a stream of role IDs as they're invalidated, for
// components that keep their own derived state in step with the cache
// (e.g. a warm-cache refresher).
func (c *Cache) Subscribe(ctx context.Context) broadcast.Subscriber[uuid.UUID] {
	return c.events.Subscribe(ctx)
}

// Get returns roleID's cached permission set, checking L1 then L2. A miss at
// both levels returns ok=false; the caller (RBACEvaluator) is expected to
// walk the role graph and call Set to populate the cache.
func (c *Cache) Get(ctx context.Context, roleID uuid.UUID) (PermissionSet, bool, error) {
	if entry, ok := c.l1.Get(roleID); ok {
		if time.Now().Before(entry.expiresAt) {
			return entry.set, true, nil
		}
		c.l1.Remove(roleID)
	}
	if c.redis == nil {
		return nil, false, nil
	}

	raw, err := c.redis.Get(ctx, redisKey(roleID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read permission cache: %w", err)
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, false, fmt.Errorf("decode cached permission set: %w", err)
	}
	set := toSet(names)
	c.l1.Put(roleID, l1Entry{set: set, expiresAt: time.Now().Add(c.cfg.ttl())})
	return set, true, nil
}

// Set stores roleID's expanded permission set in both L1 and L2, both under
// the same TTL so a stale L1 hit can never outlive L2's copy.
func (c *Cache) Set(ctx context.Context, roleID uuid.UUID, set PermissionSet) error {
	c.l1.Put(roleID, l1Entry{set: set, expiresAt: time.Now().Add(c.cfg.ttl())})
	if c.redis == nil {
		return nil
	}

	raw, err := json.Marshal(fromSet(set))
	if err != nil {
		return fmt.Errorf("encode permission set: %w", err)
	}
	if err := c.redis.Set(ctx, redisKey(roleID), raw, c.cfg.ttl()).Err(); err != nil {
		return fmt.Errorf("write permission cache: %w", err)
	}
	return nil
}

// SetDescendants records roleID's transitive descendant set, as computed by
// the role-graph mutation guard whenever a parent relationship changes. It
// is what makes Invalidate O(descendants) instead of a full scan.
func (c *Cache) SetDescendants(roleID uuid.UUID, descendants []uuid.UUID) {
	set := make(map[uuid.UUID]struct{}, len(descendants))
	for _, d := range descendants {
		set[d] = struct{}{}
	}
	c.mu.Lock()
	c.descendants[roleID] = set
	c.mu.Unlock()
}

// Invalidate evicts roleID and every role that transitively inherits from
// it — required whenever roleID's own permission set, or any ancestor's,
// changes. It also publishes each evicted role ID to Subscribe listeners.
func (c *Cache) Invalidate(ctx context.Context, roleID uuid.UUID) error {
	c.mu.RLock()
	affected := make([]uuid.UUID, 0, len(c.descendants[roleID])+1)
	affected = append(affected, roleID)
	for d := range c.descendants[roleID] {
		affected = append(affected, d)
	}
	c.mu.RUnlock()

	for _, id := range affected {
		c.l1.Remove(id)
		if c.redis != nil {
			if err := c.redis.Del(ctx, redisKey(id)).Err(); err != nil {
				return fmt.Errorf("evict permission cache entry: %w", err)
			}
		}
		c.events.Broadcast(ctx, broadcast.Message[uuid.UUID]{Data: id})
	}
	return nil
}

// InvalidateAll drops every cached entry, used after a bulk permission
// re-seed (e.g. an admin migration) where per-role invalidation would be
// more expensive than a full reset.
func (c *Cache) InvalidateAll(ctx context.Context) error {
	c.mu.RLock()
	ids := make([]uuid.UUID, 0, len(c.descendants))
	for id := range c.descendants {
		ids = append(ids, id)
	}
	c.mu.RUnlock()

	c.l1.Clear()
	if c.redis != nil {
		for _, id := range ids {
			if err := c.redis.Del(ctx, redisKey(id)).Err(); err != nil {
				return fmt.Errorf("evict permission cache entry: %w", err)
			}
		}
	}
	for _, id := range ids {
		c.events.Broadcast(ctx, broadcast.Message[uuid.UUID]{Data: id})
	}
	return nil
}

// Close releases the cache's invalidation broadcaster.
func (c *Cache) Close() {
	c.events.Close()
}

func redisKey(roleID uuid.UUID) string {
	return redisKeyPrefix + roleID.String()
}

func toSet(names []string) PermissionSet {
	set := make(PermissionSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func fromSet(set PermissionSet) []string {
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	return names
}
