package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vila-abandonada/backend/internal/pkg/flog"
)

// LocalsKeyRequestID is the fiber.Ctx#Locals key holding the request id.
const LocalsKeyRequestID = "requestId"

// RequestID copies the request id injected by Logger into ctx.Locals.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := flog.IDFromFiberCtx(c); ok {
			c.Locals(LocalsKeyRequestID, id.String())
		}
		return c.Next()
	}
}
