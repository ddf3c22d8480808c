package sweepwkr_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/vila-abandonada/backend/internal/model"
	"github.com/vila-abandonada/backend/internal/pkg/testentry"
	"github.com/vila-abandonada/backend/internal/repo"
	"github.com/vila-abandonada/backend/internal/service"
	"github.com/vila-abandonada/backend/internal/workers/sweepwkr"
)

func TestSweep(t *testing.T) {
	var (
		accountService *service.Account
		accountRepo    *repo.Account
		db             *bun.DB
	)
	testentry.Populate(t, &accountService, &accountRepo, &db)
	ctx := context.Background()

	user := &model.User{Email: "gil@example.com"}
	require.NoError(t, accountRepo.CreateUser(ctx, user))

	now := time.Now().UTC()
	tokens := []*model.PasswordResetToken{
		{UserID: user.ID, Token: "live", ExpiresAt: now.Add(time.Hour)},
		{UserID: user.ID, Token: "redeemed", ExpiresAt: now.Add(time.Hour), Used: true},
		{UserID: user.ID, Token: "expired", ExpiresAt: now.Add(-time.Minute)},
	}
	for _, token := range tokens {
		require.NoError(t, accountRepo.CreateResetToken(ctx, db, token))
	}

	w := &sweepwkr.Worker{WorkerDeps: sweepwkr.WorkerDeps{AccountService: accountService}}
	assert.Equal(t, int64(2), w.Sweep(ctx))
	assert.Equal(t, 1, w.Count())

	remaining, err := db.NewSelect().Model((*model.PasswordResetToken)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining, "expect only the redeemable token to survive")

	assert.Equal(t, int64(0), w.Sweep(ctx))
}
