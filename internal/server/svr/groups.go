package svr

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/vila-abandonada/backend/internal/app/appconfig"
	"github.com/vila-abandonada/backend/internal/pkg/middlewares"
)

type V1 struct {
	fiber.Router
}

type Meta struct {
	fiber.Router
}

// Sensitive guards the routes that send mail.
type Sensitive struct {
	Handler fiber.Handler
}

func CreateEndpointGroups(app *fiber.App) (*V1, *Meta) {
	v1 := app.Group("/api/v1")
	meta := app.Group("/api/_")

	return &V1{Router: v1}, &Meta{Router: meta}
}

func CreateSensitive(conf *appconfig.Config, client *redis.Client) *Sensitive {
	return &Sensitive{Handler: middlewares.SensitiveLimiter(conf, client)}
}
