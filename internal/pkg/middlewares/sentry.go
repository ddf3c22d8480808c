package middlewares

import (
	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
)

// EnrichSentry tags the request scoped sentry hub with the request id.
func EnrichSentry() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if hub := fibersentry.GetHubFromContext(c); hub != nil {
			if id, ok := c.Locals(LocalsKeyRequestID).(string); ok {
				hub.Scope().SetTag("request_id", id)
			}
		}
		return c.Next()
	}
}
