package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/SubhajitChakrabort/ProfilePage/internal/application/usecase/profile"
	"github.com/SubhajitChakrabort/ProfilePage/pkg/logger"
)

// profileCacheTTL bounds staleness when an explicit invalidation is lost,
// e.g. a best-effort Del swallowed by a redis hiccup.
const profileCacheTTL = 60 * time.Second

// RedisProfileCache is a read-through cache of rendered public profile
// payloads. Cache failures are logged and treated as misses.
type RedisProfileCache struct {
	rdb    *redis.Client
	logger logger.Logger
}

func NewRedisProfileCache(rdb *redis.Client, log logger.Logger) *RedisProfileCache {
	return &RedisProfileCache{rdb: rdb, logger: log}
}

func (c *RedisProfileCache) GetProfile(ctx context.Context, key string) (*profile.View, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("profile cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var v profile.View
	if err := json.Unmarshal(data, &v); err != nil {
		c.logger.Warn("profile cache payload corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &v, true
}

func (c *RedisProfileCache) SetProfile(ctx context.Context, key string, v *profile.View) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("profile cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, key, data, profileCacheTTL).Err(); err != nil {
		c.logger.Warn("profile cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *RedisProfileCache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("profile cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
