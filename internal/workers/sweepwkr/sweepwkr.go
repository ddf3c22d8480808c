// Package sweepwkr periodically deletes password reset tokens that can no longer be redeemed.
package sweepwkr

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/vila-abandonada/backend/internal/app/appconfig"
	"github.com/vila-abandonada/backend/internal/app/appcontext"
	"github.com/vila-abandonada/backend/internal/pkg/observability"
	"github.com/vila-abandonada/backend/internal/service"
)

const jobResetTokens = "reset_tokens"

type WorkerDeps struct {
	fx.In

	Config         *appconfig.Config
	AccountService *service.Account
	RedSync        *redsync.Redsync
}

type Worker struct {
	// count counts sweeps worker has completed so far
	count int

	// interval describes the interval in-between sweeps
	interval time.Duration

	// lock keeps replicas from sweeping at the same tick; nil without redis
	lock *redsync.Mutex

	// deps
	WorkerDeps
}

// Start runs the sweeper alongside the HTTP server.
func Start(lc fx.Lifecycle, deps WorkerDeps) {
	if deps.Config.ResetTokenSweepInterval <= 0 || deps.Config.AppContext.Env != appcontext.EnvServer {
		return
	}

	w := &Worker{
		interval:   deps.Config.ResetTokenSweepInterval,
		WorkerDeps: deps,
	}
	if deps.RedSync != nil {
		w.lock = deps.RedSync.NewMutex("mutex:sweep-reset-tokens", redsync.WithExpiry(deps.Config.ResetTokenSweepInterval/2), redsync.WithTries(1))
	}

	var cancel context.CancelFunc
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			cancel = w.do()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func (w *Worker) do() context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.tick(ctx)
			}
		}
	}()

	return cancel
}

func (w *Worker) tick(ctx context.Context) {
	if w.lock == nil {
		w.Sweep(ctx)
		return
	}
	// the lock is left to expire so that other replicas skip this interval
	if err := w.lock.LockContext(ctx); err != nil {
		log.Debug().Err(err).Str("evt.name", "sweepwkr.skip").Msg("another replica is sweeping")
		return
	}
	w.Sweep(ctx)
}

// Sweep runs one sweep and returns the number of deleted tokens.
func (w *Worker) Sweep(ctx context.Context) int64 {
	start := time.Now()
	defer func() {
		observability.WorkerRunDuration.WithLabelValues(jobResetTokens).Set(time.Since(start).Seconds())
	}()

	deleted, err := w.AccountService.SweepResetTokens(ctx)
	if err != nil {
		log.Error().Err(err).Str("evt.name", "sweepwkr.sweep").Msg("failed to sweep reset tokens")
		return 0
	}

	w.count++
	log.Debug().
		Str("evt.name", "sweepwkr.sweep").
		Int("count", w.count).
		Int64("deleted", deleted).
		Msg("reset tokens swept")
	return deleted
}

func (w *Worker) Count() int {
	return w.count
}
