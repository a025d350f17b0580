package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	coreport "github.com/avesta-dev/backend-template/internal/domain/port/core"
	cacheport "github.com/avesta-dev/backend-template/internal/domain/port/cache"
	"github.com/avesta-dev/backend-template/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// RedisStore implements the cache.Store port on top of a Redis client
type RedisStore struct {
	client *redis.Client
	logger coreport.Logger
}

// NewRedisStore creates a store over an already configured client
func NewRedisStore(client *redis.Client, logger coreport.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		logger: logger,
	}
}

// NewClient builds a Redis client from configuration and verifies the
// connection with a ping.
func NewClient(ctx context.Context, cfg *config.RedisConfig, logger coreport.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
		MaxRetries:  cfg.MaxRetries,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	logger.Info("Connected to redis", map[string]any{
		"addr": cfg.Addr,
		"db":   cfg.DB,
	})
	return client, nil
}

// Get retrieves the value stored under key
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, cacheport.ErrCacheMiss
		}
		s.logger.Error("Cache read failed", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("cache get %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key. A zero ttl stores without expiry.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		s.logger.Error("Cache write failed", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key. Deleting an absent key is not
// an error.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.Error("Cache delete failed", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
		return fmt.Errorf("cache delete %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
