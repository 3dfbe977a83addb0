package identity

import (
	"context"
	"time"

	"styledecor/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const roleCachePrefix = "styledecor:role:"

// RoleCache memoizes role lookups per email.
type RoleCache interface {
	Get(ctx context.Context, email string) (models.Caller, bool)
	Set(ctx context.Context, caller models.Caller)
	Invalidate(ctx context.Context, email string)
}

// RedisRoleCache stores each caller as a hash with a TTL. A nil *RedisRoleCache is a no-op cache.
type RedisRoleCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisRoleCache returns nil when client is nil so callers can wire it unconditionally.
func NewRedisRoleCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisRoleCache {
	if client == nil {
		return nil
	}
	return &RedisRoleCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisRoleCache) Get(ctx context.Context, email string) (models.Caller, bool) {
	if c == nil {
		return models.Caller{}, false
	}
	vals, err := c.client.HGetAll(ctx, roleCachePrefix+email).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Role cache read failed", zap.String("email", email), zap.Error(err))
		}
		return models.Caller{}, false
	}
	if vals["role"] == "" {
		return models.Caller{}, false
	}
	return models.Caller{Email: email, Role: vals["role"], Status: vals["status"]}, true
}

func (c *RedisRoleCache) Set(ctx context.Context, caller models.Caller) {
	if c == nil {
		return
	}
	key := roleCachePrefix + caller.Email
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, "role", caller.Role, "status", caller.Status)
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	if err != nil {
		c.logger.Warn("Role cache write failed", zap.String("email", caller.Email), zap.Error(err))
	}
}

func (c *RedisRoleCache) Invalidate(ctx context.Context, email string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, roleCachePrefix+email).Err(); err != nil {
		c.logger.Warn("Role cache invalidation failed", zap.String("email", email), zap.Error(err))
	}
}
