package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*RedisCacheService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCacheServiceWithClient(client), mr
}

func TestRedisCacheSetGet(t *testing.T) {
	cache, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "cliente:abc", []byte(`{"nome":"Ana"}`), 300*time.Second))

	data, err := cache.Get(ctx, "cliente:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"nome":"Ana"}`), data)
}

func TestRedisCacheMiss(t *testing.T) {
	cache, _ := setupCache(t)

	_, err := cache.Get(context.Background(), "cliente:missing")
	assert.ErrorIs(t, err, shared.ErrCacheMiss)
}

func TestRedisCacheDelete(t *testing.T) {
	cache, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "clientes:list", []byte(`{}`), time.Minute))
	require.NoError(t, cache.Delete(ctx, "clientes:list"))

	_, err := cache.Get(ctx, "clientes:list")
	assert.ErrorIs(t, err, shared.ErrCacheMiss)
}

func TestRedisCacheDeleteAbsentKey(t *testing.T) {
	cache, _ := setupCache(t)
	assert.NoError(t, cache.Delete(context.Background(), "clientes:list"))
}

func TestRedisCacheExists(t *testing.T) {
	cache, _ := setupCache(t)
	ctx := context.Background()

	ok, err := cache.Exists(ctx, "cliente:abc")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "cliente:abc", []byte(`x`), time.Minute))

	ok, err = cache.Exists(ctx, "cliente:abc")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisCacheTTLExpiry(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "cliente:abc", []byte(`x`), 300*time.Second))
	assert.Equal(t, 300*time.Second, mr.TTL("cliente:abc"))

	mr.FastForward(301 * time.Second)

	_, err := cache.Get(ctx, "cliente:abc")
	assert.ErrorIs(t, err, shared.ErrCacheMiss)
}

func TestRedisCacheUnavailable(t *testing.T) {
	cache, mr := setupCache(t)
	mr.Close()

	_, err := cache.Get(context.Background(), "cliente:abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, shared.ErrCacheMiss, "an outage is not a miss")
}
