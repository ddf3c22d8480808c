package v1_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	v1 "github.com/vila-abandonada/backend/internal/controller/v1"
	"github.com/vila-abandonada/backend/internal/pkg/testentry"
)

func TestAccountEndpoints(t *testing.T) {
	var app *fiber.App
	testentry.Populate(t, &app)

	t.Run("Waitlist", func(t *testing.T) {
		status, body := request(t, app, http.MethodPost, "/api/v1/waitlist", `{"email": "Dora@Example.com", "name": "Dora"}`)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "dora@example.com", body.Get("data.email").String())
		assert.False(t, body.Get("data.email_sent").Bool())

		status, body = request(t, app, http.MethodPost, "/api/v1/waitlist", `{"email": "dora@example.com"}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body.Get("message").String(), "already on the waitlist")

		status, body = request(t, app, http.MethodPost, "/api/v1/waitlist", `{"email": "not-an-email"}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "email", body.Get("data.violations.0.violation").String())
	})

	t.Run("PasswordResetAnswersIdentically", func(t *testing.T) {
		status, body := request(t, app, http.MethodPost, "/api/v1/auth/password-reset", `{"email": "ghost@example.com"}`)
		assert.Equal(t, http.StatusOK, status)
		assert.True(t, body.Get("success").Bool())
		assert.Equal(t, v1.PasswordResetRequestedMessage, body.Get("message").String())
		assert.Equal(t, "null", body.Get("data").Raw)
	})

	t.Run("PasswordResetConfirmRejectsUnknownToken", func(t *testing.T) {
		token := "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789ab"
		status, body := request(t, app, http.MethodPost, "/api/v1/auth/password-reset/confirm", `{"token": "`+token+`", "password": "long enough"}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "invalid or expired token", body.Get("message").String())
	})
}
