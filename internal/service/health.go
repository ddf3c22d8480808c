package service

import (
	"context"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	"github.com/vila-abandonada/backend/internal/pkg/async"
)

var (
	ErrDatabaseNotReachable = errors.New("database not reachable")
	ErrRedisNotReachable    = errors.New("redis not reachable")
	ErrNATSNotReachable     = errors.New("nats not reachable")
)

// Health checks the backing services. Redis and NATS are optional and only checked when connected.
type Health struct {
	DB    *bun.DB
	Redis *redis.Client
	NATS  *nats.Conn
}

func NewHealth(db *bun.DB, redis *redis.Client, nats *nats.Conn) *Health {
	return &Health{
		DB:    db,
		Redis: redis,
		NATS:  nats,
	}
}

// Ping probes every connected backing service concurrently and reports all failures.
func (s *Health) Ping(ctx context.Context) error {
	probes := []<-chan error{
		async.Errable(func() error {
			if err := s.DB.PingContext(ctx); err != nil {
				return errors.Wrap(ErrDatabaseNotReachable, err.Error())
			}
			return nil
		}),
	}

	if s.Redis != nil {
		probes = append(probes, async.Errable(func() error {
			if err := s.Redis.Ping(ctx).Err(); err != nil {
				return errors.Wrap(ErrRedisNotReachable, err.Error())
			}
			return nil
		}))
	}

	// nats pings every 20 seconds on its own (see infra/nats.go)
	if s.NATS != nil {
		probes = append(probes, async.Errable(func() error {
			status := s.NATS.Status()
			if status != nats.CONNECTED && status != nats.DRAINING_PUBS && status != nats.DRAINING_SUBS {
				return errors.Wrap(ErrNATSNotReachable, status.String())
			}
			return nil
		}))
	}

	return async.WaitAll(probes...)
}
