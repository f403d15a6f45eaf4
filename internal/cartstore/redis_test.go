package cartstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisKV instance
func setupTestRedis(t *testing.T) (*RedisKV, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	kv := NewRedisKV(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return kv, mr, cleanup
}

func TestRedisGet_Success(t *testing.T) {
	kv, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, mr.Set(redisKey("cart1"), `[{"id":1}]`))

	data, err := kv.Get(context.Background(), "cart1")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(data))
}

func TestRedisGet_Miss(t *testing.T) {
	kv, _, cleanup := setupTestRedis(t)
	defer cleanup()

	data, err := kv.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, data)
}

func TestRedisGet_ServerDown(t *testing.T) {
	kv, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Close()

	_, err := kv.Get(context.Background(), "cart1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRedisSet_WithTTL(t *testing.T) {
	kv, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	err := kv.Set(context.Background(), "cart1", []byte(`[]`))
	require.NoError(t, err)

	assert.True(t, mr.Exists("cart:cart1"))
	ttl := mr.TTL("cart:cart1")
	assert.GreaterOrEqual(t, ttl, 30*24*time.Hour)
	assert.Less(t, ttl, 31*24*time.Hour)
}

func TestRedisDelete(t *testing.T) {
	kv, mr, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "cart1", []byte(`[]`)))
	require.NoError(t, kv.Delete(ctx, "cart1"))

	assert.False(t, mr.Exists("cart:cart1"))
}
