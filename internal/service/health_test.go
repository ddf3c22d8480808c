package service_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/vila-abandonada/backend/internal/pkg/testentry"
	"github.com/vila-abandonada/backend/internal/service"
)

func TestHealthPing(t *testing.T) {
	var s *service.Health
	var db *bun.DB
	testentry.Populate(t, &s, &db)
	ctx := context.Background()

	assert.NoError(t, s.Ping(ctx), "expect optional services to be skipped when absent")

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	withRedis := service.NewHealth(db, client, nil)
	require.NoError(t, withRedis.Ping(ctx))

	mr.Close()
	err := withRedis.Ping(ctx)
	assert.ErrorIs(t, err, service.ErrRedisNotReachable)
	assert.NotErrorIs(t, err, service.ErrDatabaseNotReachable)
}
