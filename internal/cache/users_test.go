package cache

import (
	"context"
	"testing"

	"ripple/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*UserCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewUserCache(rdb), mr
}

func TestUserCacheRoundtrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	user := &models.User{ID: 7, ExternalID: "auth0|7", Name: "Greta"}
	c.Set(ctx, user)

	got, ok := c.Get(ctx, 7)
	require.True(t, ok)
	assert.Equal(t, user.Name, got.Name)
	assert.Equal(t, user.ExternalID, got.ExternalID)

	_, ok = c.Get(ctx, 8)
	assert.False(t, ok)
}

func TestUserCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, &models.User{ID: 7, Name: "Greta"})
	c.Invalidate(ctx, 7)

	_, ok := c.Get(ctx, 7)
	assert.False(t, ok)
}

func TestUserCacheTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, &models.User{ID: 7, Name: "Greta"})
	mr.FastForward(userTTL + 1)

	_, ok := c.Get(ctx, 7)
	assert.False(t, ok)
}

func TestUserCacheNilClient(t *testing.T) {
	ctx := context.Background()

	var c *UserCache
	_, ok := c.Get(ctx, 1)
	assert.False(t, ok)
	c.Set(ctx, &models.User{ID: 1})
	c.Invalidate(ctx, 1)

	c = NewUserCache(nil)
	_, ok = c.Get(ctx, 1)
	assert.False(t, ok)
	c.Set(ctx, &models.User{ID: 1})
	c.Invalidate(ctx, 1)
}
