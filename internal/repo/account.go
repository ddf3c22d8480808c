package repo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/vila-abandonada/backend/internal/model"
	"github.com/vila-abandonada/backend/internal/repo/selector"
)

type Account struct {
	db       *bun.DB
	userSel  selector.S[model.User]
	tokenSel selector.S[model.PasswordResetToken]
}

func NewAccount(db *bun.DB) *Account {
	return &Account{
		db:       db,
		userSel:  selector.New[model.User](db),
		tokenSel: selector.New[model.PasswordResetToken](db),
	}
}

func (r *Account) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.userSel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("LOWER(u.email) = LOWER(?)", email)
	})
}

func (r *Account) CreateUser(ctx context.Context, user *model.User) error {
	_, err := r.db.NewInsert().Model(user).Exec(ctx)
	return errors.Wrap(err, "insert user")
}

// InvalidateResetTokens marks every unused token of the user as used.
func (r *Account) InvalidateResetTokens(ctx context.Context, db bun.IDB, userID int64) error {
	_, err := db.NewUpdate().
		Model((*model.PasswordResetToken)(nil)).
		Set("used = ?", true).
		Where("user_id = ?", userID).
		Where("used = ?", false).
		Exec(ctx)
	return errors.Wrap(err, "invalidate reset tokens")
}

func (r *Account) CreateResetToken(ctx context.Context, db bun.IDB, token *model.PasswordResetToken) error {
	_, err := db.NewInsert().Model(token).Exec(ctx)
	return errors.Wrap(err, "insert reset token")
}

// GetRedeemableToken finds an unused token expiring after now.
func (r *Account) GetRedeemableToken(ctx context.Context, db bun.IDB, token string, now time.Time) (*model.PasswordResetToken, error) {
	var t model.PasswordResetToken
	err := db.NewSelect().
		Model(&t).
		Where("prt.token = ?", token).
		Where("prt.used = ?", false).
		Where("prt.expires_at > ?", now).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Account) MarkResetTokenUsed(ctx context.Context, db bun.IDB, id int64) error {
	_, err := db.NewUpdate().
		Model((*model.PasswordResetToken)(nil)).
		Set("used = ?", true).
		Where("id = ?", id).
		Exec(ctx)
	return errors.Wrap(err, "mark reset token used")
}

func (r *Account) UpdatePasswordHash(ctx context.Context, db bun.IDB, userID int64, hash string, now time.Time) error {
	_, err := db.NewUpdate().
		Model((*model.User)(nil)).
		Set("password_hash = ?", hash).
		Set("updated_at = ?", now).
		Where("id = ?", userID).
		Exec(ctx)
	return errors.Wrap(err, "update password hash")
}

// DeleteStaleResetTokens removes tokens that were redeemed, invalidated or expired before now.
func (r *Account) DeleteStaleResetTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*model.PasswordResetToken)(nil)).
		WhereOr("used = ?", true).
		WhereOr("expires_at <= ?", now).
		Exec(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "delete stale reset tokens")
	}
	return res.RowsAffected()
}
