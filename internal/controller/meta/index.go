package meta

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vila-abandonada/backend/internal/pkg/envelope"
)

func RegisterIndex(app *fiber.App) {
	app.Get("/api", func(c *fiber.Ctx) error {
		return envelope.OK(c, nil, "Welcome to the Vila Abandonada API v1")
	})
}
