package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/vila-abandonada/backend/internal/app/appconfig"
)

// Redis returns a nil client when no RedisURL is configured; consumers fall back to in-memory state.
func Redis(conf *appconfig.Config) (*redis.Client, error) {
	if conf.RedisURL == "" {
		log.Info().Str("evt.name", "infra.redis.disabled").Msg("infra: redis: no url configured, skipping")
		return nil, nil
	}

	u, err := redis.ParseURL(conf.RedisURL)
	if err != nil {
		log.Error().Err(err).Msg("infra: redis: failed to parse redis url")
		return nil, err
	}

	client := redis.NewClient(u)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Msg("infra: redis: failed to ping database")
		return nil, err
	}

	return client, nil
}
