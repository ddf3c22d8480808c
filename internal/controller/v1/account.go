package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/vila-abandonada/backend/internal/model/types"
	"github.com/vila-abandonada/backend/internal/pkg/cachectrl"
	"github.com/vila-abandonada/backend/internal/pkg/envelope"
	"github.com/vila-abandonada/backend/internal/server/svr"
	"github.com/vila-abandonada/backend/internal/service"
	"github.com/vila-abandonada/backend/internal/util/rekuest"
)

// PasswordResetRequestedMessage answers every reset request, registered email or not.
const PasswordResetRequestedMessage = "If the email is registered, a password reset link has been sent"

type Account struct {
	fx.In

	WaitlistService *service.Waitlist
	AccountService  *service.Account
	Sensitive       *svr.Sensitive
}

func RegisterAccount(v1 *svr.V1, c Account) {
	v1.Post("/waitlist", cachectrl.NoStore, c.Sensitive.Handler, c.JoinWaitlist)
	v1.Post("/auth/password-reset", cachectrl.NoStore, c.Sensitive.Handler, c.RequestPasswordReset)
	v1.Post("/auth/password-reset/confirm", cachectrl.NoStore, c.Sensitive.Handler, c.ConfirmPasswordReset)
}

// @Summary      Join the Waitlist
// @Description  Registers the email and sends a confirmation mail. email_sent is false when the mail could not be delivered.
// @Tags         Account
// @Accept       json
// @Produce      json
// @Param        request  body      types.WaitlistRequest  true  "Waitlist registration"
// @Success      200     {object}  types.Envelope{data=types.WaitlistResult}
// @Failure      400     {object}  types.Envelope "Invalid request or email already registered"
// @Router       /api/v1/waitlist [POST]
func (c *Account) JoinWaitlist(ctx *fiber.Ctx) error {
	var req types.WaitlistRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	result, err := c.WaitlistService.Register(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return envelope.OK(ctx, result, "Successfully joined the waitlist")
}

// @Summary      Request a Password Reset
// @Description  Mails a reset link when the email belongs to a user. The response does not tell whether it does.
// @Tags         Account
// @Accept       json
// @Produce      json
// @Param        request  body      types.PasswordResetRequest  true  "Email"
// @Success      200     {object}  types.Envelope
// @Failure      400     {object}  types.Envelope "Invalid request"
// @Router       /api/v1/auth/password-reset [POST]
func (c *Account) RequestPasswordReset(ctx *fiber.Ctx) error {
	var req types.PasswordResetRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	if err := c.AccountService.RequestPasswordReset(ctx.UserContext(), &req); err != nil {
		return err
	}
	return envelope.OK(ctx, nil, PasswordResetRequestedMessage)
}

// @Summary      Confirm a Password Reset
// @Tags         Account
// @Accept       json
// @Produce      json
// @Param        request  body      types.PasswordResetConfirmRequest  true  "Token and new password"
// @Success      200     {object}  types.Envelope
// @Failure      400     {object}  types.Envelope "Invalid or expired token"
// @Router       /api/v1/auth/password-reset/confirm [POST]
func (c *Account) ConfirmPasswordReset(ctx *fiber.Ctx) error {
	var req types.PasswordResetConfirmRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	if err := c.AccountService.ConfirmPasswordReset(ctx.UserContext(), &req); err != nil {
		return err
	}
	return envelope.OK(ctx, nil, "Password has been reset successfully")
}
