package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ripple/internal/models"

	"github.com/redis/go-redis/v9"
)

// userTTL bounds staleness for cached user profiles.
const userTTL = 5 * time.Minute

// UserCache caches user profiles by id. All methods are nil-receiver safe
// and degrade to a no-op when Redis is unavailable.
type UserCache struct {
	rdb *redis.Client
}

// NewUserCache returns a UserCache backed by the given client, which may be nil.
func NewUserCache(rdb *redis.Client) *UserCache {
	return &UserCache{rdb: rdb}
}

func userKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// Get returns the cached user or (nil, false) on miss or error.
func (c *UserCache) Get(ctx context.Context, id uint) (*models.User, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, false
	}
	return &user, true
}

// Set stores the user profile with a TTL.
func (c *UserCache) Set(ctx context.Context, user *models.User) {
	if c == nil || c.rdb == nil || user == nil {
		return
	}
	data, err := json.Marshal(user)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, userKey(user.ID), data, userTTL).Err()
}

// Invalidate drops the cached profile after an update or delete.
func (c *UserCache) Invalidate(ctx context.Context, id uint) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, userKey(id)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return
	}
}
