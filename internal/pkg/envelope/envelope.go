// Package envelope writes the {success, data, message, timestamp} body shared by every endpoint.
package envelope

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vila-abandonada/backend/internal/model/types"
)

func New(success bool, data any, message string) *types.Envelope {
	return &types.Envelope{
		Success:   success,
		Data:      data,
		Message:   message,
		Timestamp: time.Now().Unix(),
	}
}

// OK writes a 200 success envelope.
func OK(ctx *fiber.Ctx, data any, message string) error {
	return ctx.JSON(New(true, data, message))
}

// Fail writes a failure envelope with the given status.
func Fail(ctx *fiber.Ctx, status int, data any, message string) error {
	return ctx.Status(status).JSON(New(false, data, message))
}
