package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/livro_caixa/internal/core/domain"
	portsrepo "github.com/SscSPs/livro_caixa/internal/core/ports/repositories"
	"github.com/go-redis/redis/v8"
)

const drawerKeyPrefix = "livrocaixa:drawer:"

// RedisDrawerCache shares active openings between instances through Redis.
type RedisDrawerCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ portsrepo.DrawerCache = (*RedisDrawerCache)(nil)

func NewRedisDrawerCache(client *redis.Client, ttl time.Duration) *RedisDrawerCache {
	return &RedisDrawerCache{client: client, ttl: ttl}
}

// NewRedisClient connects to Redis and pings it. It fails when Redis is unreachable
// so callers can fall back to the in-memory cache.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

func drawerKey(userID string) string {
	return drawerKeyPrefix + userID
}

func (c *RedisDrawerCache) Get(ctx context.Context, userID string) (*domain.Opening, bool, error) {
	raw, err := c.client.Get(ctx, drawerKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read drawer cache: %w", err)
	}

	var opening domain.Opening
	if err := json.Unmarshal([]byte(raw), &opening); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached opening: %w", err)
	}
	return &opening, true, nil
}

func (c *RedisDrawerCache) Set(ctx context.Context, opening domain.Opening) error {
	payload, err := json.Marshal(opening)
	if err != nil {
		return fmt.Errorf("failed to encode opening: %w", err)
	}
	if err := c.client.Set(ctx, drawerKey(opening.UserID), string(payload), c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write drawer cache: %w", err)
	}
	return nil
}

func (c *RedisDrawerCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, drawerKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear drawer cache: %w", err)
	}
	return nil
}
