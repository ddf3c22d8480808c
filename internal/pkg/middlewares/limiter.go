package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/vila-abandonada/backend/internal/app/appconfig"
	"github.com/vila-abandonada/backend/internal/pkg/envelope"
	"github.com/vila-abandonada/backend/internal/pkg/fiberstore"
)

const limiterKeyPrefix = "vila:limiter:"

// SensitiveLimiter throttles the endpoints that send mail, per client IP. Counters live in
// Redis when a client is given, in process memory otherwise. A zero max disables it.
func SensitiveLimiter(conf *appconfig.Config, client *redis.Client) fiber.Handler {
	if conf.SensitiveRateLimitMax <= 0 {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	cfg := limiter.Config{
		Max:        conf.SensitiveRateLimitMax,
		Expiration: conf.SensitiveRateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.Path() + "|" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Warn().
				Str("evt.name", "http.rate_limited").
				Str("ip", c.IP()).
				Str("path", c.Path()).
				Msg("rate limit reached")
			return envelope.Fail(c, fiber.StatusTooManyRequests, nil, "too many requests: please try again later")
		},
	}
	if client != nil {
		cfg.Storage = fiberstore.NewRedis(client, limiterKeyPrefix)
	}

	return limiter.New(cfg)
}
