package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/dchest/uniuri"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"

	"github.com/vila-abandonada/backend/internal/app/appconfig"
	"github.com/vila-abandonada/backend/internal/model"
	"github.com/vila-abandonada/backend/internal/model/types"
	"github.com/vila-abandonada/backend/internal/pkg/notify"
	"github.com/vila-abandonada/backend/internal/pkg/vaerr"
	"github.com/vila-abandonada/backend/internal/repo"
)

const ResetTokenLength = 64

var ErrInvalidResetToken = vaerr.ErrInvalidReq.Msg("invalid or expired token")

type Account struct {
	DB          *bun.DB
	Config      *appconfig.Config
	AccountRepo *repo.Account
	Notifier    notify.Notifier
}

func NewAccount(db *bun.DB, conf *appconfig.Config, accountRepo *repo.Account, notifier notify.Notifier) *Account {
	return &Account{
		DB:          db,
		Config:      conf,
		AccountRepo: accountRepo,
		Notifier:    notifier,
	}
}

// RequestPasswordReset issues a fresh reset token for a registered email and mails it.
// Unknown emails are not an error: the caller answers both cases identically.
func (s *Account) RequestPasswordReset(ctx context.Context, req *types.PasswordResetRequest) error {
	L := log.With().Str("evt.name", "account.password_reset.request").Logger()

	user, err := s.AccountRepo.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if err == vaerr.ErrNotFound {
			L.Info().Msg("password reset requested for unknown email")
			return nil
		}
		return dbErr(err)
	}

	now := time.Now().UTC()
	token := &model.PasswordResetToken{
		UserID:    user.ID,
		Token:     uniuri.NewLen(ResetTokenLength),
		ExpiresAt: now.Add(s.Config.PasswordResetTokenTTL),
		CreatedAt: now,
	}

	err = s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := s.AccountRepo.InvalidateResetTokens(ctx, tx, user.ID); err != nil {
			return err
		}
		return s.AccountRepo.CreateResetToken(ctx, tx, token)
	})
	if err != nil {
		return dbErr(err)
	}

	msg, err := notify.PasswordReset(user.Email, user.Name, s.Config.PasswordResetURL, token.Token, s.Config.PasswordResetTokenTTL)
	if err != nil {
		L.Error().Err(err).Msg("failed to render password reset mail")
		return nil
	}
	sent := notify.Deliver(ctx, s.Notifier, msg)
	L.Info().Int64("user_id", user.ID).Bool("email_sent", sent).Msg("password reset token issued")

	return nil
}

// ConfirmPasswordReset redeems token and replaces the password of its user.
func (s *Account) ConfirmPasswordReset(ctx context.Context, req *types.PasswordResetConfirmRequest) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return vaerr.ErrInternalError.Msg("failed to hash password")
	}

	var userID int64
	err = s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now().UTC()
		token, err := s.AccountRepo.GetRedeemableToken(ctx, tx, req.Token, now)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrInvalidResetToken
			}
			return err
		}
		userID = token.UserID

		if err := s.AccountRepo.MarkResetTokenUsed(ctx, tx, token.ID); err != nil {
			return err
		}
		return s.AccountRepo.UpdatePasswordHash(ctx, tx, token.UserID, string(hash), now)
	})
	if err != nil {
		return dbErr(err)
	}

	log.Info().
		Str("evt.name", "account.password_reset.confirm").
		Int64("user_id", userID).
		Msg("password replaced through reset token")
	return nil
}

// SweepResetTokens deletes every token that can no longer be redeemed.
func (s *Account) SweepResetTokens(ctx context.Context) (int64, error) {
	deleted, err := s.AccountRepo.DeleteStaleResetTokens(ctx, time.Now().UTC())
	if err != nil {
		return 0, dbErr(err)
	}
	return deleted, nil
}
