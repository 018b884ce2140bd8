package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCacheService implements shared.CacheService on a Redis client.
type RedisCacheService struct {
	client     *redis.Client
	logger     *zap.Logger
	ownsClient bool
}

// RedisCacheOption configures the cache service
type RedisCacheOption func(*RedisCacheService)

// WithCacheLogger sets the logger for cache operations
func WithCacheLogger(logger *zap.Logger) RedisCacheOption {
	return func(s *RedisCacheService) {
		s.logger = logger
	}
}

// NewRedisCacheService creates a cache service with its own Redis client and
// verifies connectivity.
func NewRedisCacheService(cfg *config.RedisConfig, opts ...RedisCacheOption) (*RedisCacheService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	s := &RedisCacheService{
		client:     client,
		logger:     zap.NewNop(),
		ownsClient: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewRedisCacheServiceWithClient creates a cache service on an existing
// client. The caller keeps ownership of the client.
func NewRedisCacheServiceWithClient(client *redis.Client, opts ...RedisCacheOption) *RedisCacheService {
	s := &RedisCacheService{
		client: client,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the value for key, or shared.ErrCacheMiss when absent.
func (s *RedisCacheService) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

// Set stores value under key with the given TTL.
func (s *RedisCacheService) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *RedisCacheService) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Exists reports whether key is present.
func (s *RedisCacheService) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", key, err)
	}
	return n > 0, nil
}

// Ping checks connectivity, used by the health endpoint.
func (s *RedisCacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the Redis client if this service owns it.
func (s *RedisCacheService) Close() error {
	if !s.ownsClient {
		return nil
	}
	if err := s.client.Close(); err != nil {
		s.logger.Warn("failed to close redis client", zap.Error(err))
		return err
	}
	return nil
}

// Ensure RedisCacheService implements shared.CacheService
var _ shared.CacheService = (*RedisCacheService)(nil)
