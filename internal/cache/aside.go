package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	userKeyPrefix = "user:%d"
	postKeyPrefix = "post:%d"
)

const (
	// UserTTL bounds staleness of cached user records.
	UserTTL = 5 * time.Minute
	// PostTTL bounds staleness of cached post records.
	PostTTL = 30 * time.Minute
)

// UserKey returns the cache key for a user record.
func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

// PostKey returns the cache key for a post record.
func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// Aside tries Redis first; on miss it calls fetch (which must populate dest),
// then stores the result with ttl. Cache writes are best-effort.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}

// Invalidate removes a key from the cache.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateUser removes a user record from the cache.
func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidatePost removes a post record from the cache.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}
