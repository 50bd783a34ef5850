package permcache_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/juan-009/authguard/internal/permcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetAndGet_L1Only(t *testing.T) {
	c := permcache.New(permcache.Config{}, nil)
	defer c.Close()
	ctx := context.Background()

	roleID := uuid.New()
	_, ok, err := c.Get(ctx, roleID)
	require.NoError(t, err)
	assert.False(t, ok)

	set := permcache.PermissionSet{"users:read": {}, "users:*": {}}
	require.NoError(t, c.Set(ctx, roleID, set))

	got, ok, err := c.Get(ctx, roleID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, got, 2)
}

func TestCache_Invalidate_EvictsDescendants(t *testing.T) {
	c := permcache.New(permcache.Config{}, nil)
	defer c.Close()
	ctx := context.Background()

	parent := uuid.New()
	child := uuid.New()
	c.SetDescendants(parent, []uuid.UUID{child})

	require.NoError(t, c.Set(ctx, parent, permcache.PermissionSet{"a:b": {}}))
	require.NoError(t, c.Set(ctx, child, permcache.PermissionSet{"a:b": {}, "c:d": {}}))

	require.NoError(t, c.Invalidate(ctx, parent))

	_, ok, err := c.Get(ctx, parent)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = c.Get(ctx, child)
	require.NoError(t, err)
	assert.False(t, ok, "child must be evicted when an ancestor's permissions change")
}

func TestCache_InvalidateAll_ClearsEverything(t *testing.T) {
	c := permcache.New(permcache.Config{}, nil)
	defer c.Close()
	ctx := context.Background()

	roleA, roleB := uuid.New(), uuid.New()
	c.SetDescendants(roleA, nil)
	c.SetDescendants(roleB, nil)
	require.NoError(t, c.Set(ctx, roleA, permcache.PermissionSet{"a:b": {}}))
	require.NoError(t, c.Set(ctx, roleB, permcache.PermissionSet{"c:d": {}}))

	require.NoError(t, c.InvalidateAll(ctx))

	_, ok, _ := c.Get(ctx, roleA)
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, roleB)
	assert.False(t, ok)
}

func TestCache_Subscribe_ReceivesInvalidatedRoleIDs(t *testing.T) {
	c := permcache.New(permcache.Config{}, nil)
	defer c.Close()
	ctx := context.Background()

	sub := c.Subscribe(ctx)
	defer sub.Close()

	roleID := uuid.New()
	require.NoError(t, c.Set(ctx, roleID, permcache.PermissionSet{"a:b": {}}))
	require.NoError(t, c.Invalidate(ctx, roleID))

	msg := <-sub.Receive(ctx)
	assert.Equal(t, roleID, msg.Data)
}
