package middlewares

import "github.com/gofiber/fiber/v2"

func Chained(app *fiber.App, handlers ...fiber.Handler) {
	for _, h := range handlers {
		app.Use(h)
	}
}
