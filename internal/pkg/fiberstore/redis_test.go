package fiberstore

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*Redis, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, "limiter:"), mr
}

func TestRedisStorageRoundTrip(t *testing.T) {
	s, mr := newStore(t)

	val, err := s.Get("absent")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, s.Set("1.2.3.4", []byte("hits"), time.Minute))
	assert.True(t, mr.Exists("limiter:1.2.3.4"))

	val, err = s.Get("1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, []byte("hits"), val)

	mr.FastForward(2 * time.Minute)
	val, err = s.Get("1.2.3.4")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestRedisStorageResetKeepsForeignKeys(t *testing.T) {
	s, mr := newStore(t)
	require.NoError(t, mr.Set("other", "x"))
	require.NoError(t, s.Set("a", []byte("1"), 0))
	require.NoError(t, s.Set("b", []byte("2"), 0))

	require.NoError(t, s.Reset())

	assert.False(t, mr.Exists("limiter:a"))
	assert.False(t, mr.Exists("limiter:b"))
	assert.True(t, mr.Exists("other"))

	require.NoError(t, s.Delete("missing"))
}
