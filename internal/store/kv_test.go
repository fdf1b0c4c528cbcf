package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestKV(t *testing.T) (*miniredis.Miniredis, *RedisKV) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisKV(client)
}

func TestRedisKV_SetGetDelete(t *testing.T) {
	_, kv := setupTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k1", "v1", time.Minute))

	val, err := kv.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "v1", val)

	require.NoError(t, kv.Delete(ctx, "k1"))

	_, err = kv.Get(ctx, "k1")
	assert.True(t, errors.Is(err, ErrMiss))
}

func TestRedisKV_TTLExpires(t *testing.T) {
	mr, kv := setupTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k1", "v1", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := kv.Get(ctx, "k1")
	assert.ErrorIs(t, err, ErrMiss)
}
