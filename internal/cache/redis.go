package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliaalekseevofb/Twitter-clone/internal/config"
)

// CounterTTL bounds how long a cached counter may drift from the DB.
const CounterTTL = time.Hour

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

// KeyForTweetLikeCount generates the Redis key for a tweet's like count.
func (c *RedisCache) KeyForTweetLikeCount(tweetID string) string {
	return fmt.Sprintf("likes:count:%s", tweetID)
}

// KeyForFollowerCount generates the Redis key for a user's follower count.
func (c *RedisCache) KeyForFollowerCount(userID string) string {
	return fmt.Sprintf("followers:count:%s", userID)
}

// GetCount reads a cached counter. A miss returns (0, false, nil).
// TTL is refreshed on hit since the entity is evidently active.
func (c *RedisCache) GetCount(ctx context.Context, key string) (int64, bool, error) {
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil // cache miss
	} else if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	_ = c.Client.Expire(ctx, key, CounterTTL).Err()
	return n, true, nil
}

// SetCount stores a counter with a fresh TTL.
func (c *RedisCache) SetCount(ctx context.Context, key string, count int64) error {
	return c.Client.Set(ctx, key, count, CounterTTL).Err()
}

// ApplyDelta adjusts a cached counter by ±1 after a successful toggle and
// refreshes its TTL. A missing key is left alone; the next read will fill
// it from the DB.
func (c *RedisCache) ApplyDelta(ctx context.Context, key string, added bool) {
	n, err := c.Client.Exists(ctx, key).Result()
	if err != nil || n == 0 {
		return
	}
	if added {
		_, _ = c.Client.Incr(ctx, key).Result()
	} else {
		_, _ = c.Client.Decr(ctx, key).Result()
	}
	_ = c.Client.Expire(ctx, key, CounterTTL).Err()
}

func (c *RedisCache) Del(ctx context.Context, key string) error {
	return c.Client.Del(ctx, key).Err()
}
