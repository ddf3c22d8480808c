package meta

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"go.uber.org/fx"

	"github.com/vila-abandonada/backend/internal/pkg/bininfo"
	"github.com/vila-abandonada/backend/internal/pkg/cachectrl"
	"github.com/vila-abandonada/backend/internal/pkg/envelope"
	"github.com/vila-abandonada/backend/internal/server/svr"
	"github.com/vila-abandonada/backend/internal/service"
)

type Meta struct {
	fx.In

	HealthService *service.Health
}

func RegisterMeta(meta *svr.Meta, c Meta) {
	meta.Get("/bininfo", c.BinInfo)

	meta.Get("/health", cache.New(cache.Config{
		// cache it for a second to mitigate potential DDoS
		Expiration: time.Second,
	}), c.Health)
}

func (c *Meta) BinInfo(ctx *fiber.Ctx) error {
	cachectrl.OptIn(ctx, time.Hour)
	return envelope.OK(ctx, fiber.Map{
		"version": bininfo.Version,
		"build":   bininfo.BuildTime,
	}, "")
}

func (c *Meta) Health(ctx *fiber.Ctx) error {
	cachectrl.OptOut(ctx)
	if err := c.HealthService.Ping(ctx.UserContext()); err != nil {
		return envelope.Fail(ctx, fiber.StatusServiceUnavailable, nil, err.Error())
	}

	return envelope.OK(ctx, fiber.Map{
		"status": "ok",
	}, "")
}
