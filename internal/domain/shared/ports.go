package shared

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by CacheService.Get when the key is absent.
// A miss is an expected outcome, not a failure.
var ErrCacheMiss = errors.New("cache: key not found")

// CacheService is the port for the volatile read-through cache. Adapters must
// map their native miss signal to ErrCacheMiss; any other error means the
// cache itself is unavailable.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// EventPublisher is the port for emitting domain events to a named queue.
// Delivery is at-most-once from the caller's perspective; publish failures
// are reported, never retried here.
type EventPublisher interface {
	Publish(ctx context.Context, queue string, event DomainEvent) error
}
