package cache

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"foodgpt-api/internal/infrastructure/config"
	"foodgpt-api/internal/pkg/common"
)

// RedisCache Redis 快取，多副本部署時共用生成結果
type RedisCache struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewRedisCache 創建 Redis 快取
func NewRedisCache(cfg *config.CacheConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{
		client: client,
		config: cfg,
	}, nil
}

// Get 獲取快取值
func (c *RedisCache) Get(ctx context.Context, prompt string) (string, error) {
	key := cacheKey(prompt)

	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			common.LogCacheMiss("generation", key)
			return "", common.ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}

	common.LogCacheHit("generation", key)
	return value, nil
}

// Set 設置快取值
func (c *RedisCache) Set(ctx context.Context, prompt string, value string) error {
	if err := c.client.Set(ctx, cacheKey(prompt), value, c.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Close 關閉 Redis 連線
func (c *RedisCache) Close() error {
	return c.client.Close()
}
