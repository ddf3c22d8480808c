package httpserver

import (
	"strconv"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/vila-abandonada/backend/internal/pkg/envelope"
	"github.com/vila-abandonada/backend/internal/pkg/middlewares"
	"github.com/vila-abandonada/backend/internal/pkg/vaerr"
)

func handleAPIError(ctx *fiber.Ctx, e *vaerr.APIError) error {
	evt := log.Warn()
	if e.StatusCode >= fiber.StatusInternalServerError {
		evt = log.Error().Stack()
		if cause := e.Unwrap(); cause != nil {
			evt = evt.AnErr("cause", cause)
		}
	}
	evt.
		Err(e).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Str("code", e.ErrorCode).
		Msg(e.Message)

	var data any
	if e.Extras != nil && len(*e.Extras) > 0 {
		data = *e.Extras
	}

	return envelope.Fail(ctx, e.StatusCode, data, e.Message)
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	var apiErr *vaerr.APIError
	if errors.As(err, &apiErr) {
		return handleAPIError(ctx, apiErr)
	}

	// fiber errors (404 for unknown routes, 405, body limits) keep their status
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		log.Debug().
			Err(err).
			Str("method", ctx.Method()).
			Str("path", ctx.Path()).
			Int("status", fiberErr.Code).
			Msg("fiber error")
		return envelope.Fail(ctx, fiberErr.Code, nil, fiberErr.Message)
	}

	re := vaerr.ErrInternalError

	log.Error().
		Stack().
		Err(err).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Int("status", re.StatusCode).
		Msg("Internal Server Error")

	if hub := fibersentry.GetHubFromContext(ctx); hub != nil {
		hub.Scope().SetTag("status", strconv.Itoa(re.StatusCode))
		if id, ok := ctx.Locals(middlewares.LocalsKeyRequestID).(string); ok {
			hub.Scope().SetUser(sentry.User{
				ID: id,
			})
		}
		hub.CaptureException(err)
	}

	return envelope.Fail(ctx, re.StatusCode, nil, re.Message)
}
