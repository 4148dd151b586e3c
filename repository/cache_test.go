package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := NewRedisCache(mr.Addr())
	defer cache.Close()
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "calc:loan:missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "calc:loan:abc", []byte(`{"monthly_payment":1199.1}`), time.Minute))

	val, ok, err := cache.Get(ctx, "calc:loan:abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"monthly_payment":1199.1}`, string(val))
	assert.Equal(t, time.Minute, mr.TTL("calc:loan:abc"))

	mr.FastForward(2 * time.Minute)
	_, ok, err = cache.Get(ctx, "calc:loan:abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_ServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := NewRedisCache(mr.Addr())
	defer cache.Close()
	mr.Close()

	_, ok, err := cache.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, cache.Set(context.Background(), "k", []byte("v"), time.Minute))
}

func TestMemoryCache(t *testing.T) {
	cache := NewMemoryCache()
	current := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, cache.Set(ctx, "b", []byte("2"), 0))

	val, ok, err := cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", string(val))

	current = current.Add(time.Minute)
	_, ok, _ = cache.Get(ctx, "a")
	assert.False(t, ok, "entry expires at its ttl")

	_, ok, _ = cache.Get(ctx, "b")
	assert.True(t, ok, "zero ttl never expires")
	assert.Equal(t, 1, cache.Len())
}
