// Package testentry assembles the application graph over an in-memory SQLite database.
package testentry

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/vila-abandonada/backend/internal/app"
	"github.com/vila-abandonada/backend/internal/app/appconfig"
	"github.com/vila-abandonada/backend/internal/app/appcontext"
	"github.com/vila-abandonada/backend/internal/repo"
)

// Config is the configuration every test graph starts from. Mail is disabled and the
// rate limiter is off.
func Config() *appconfig.Config {
	return &appconfig.Config{
		ConfigSpec: appconfig.ConfigSpec{
			ServiceAddress:            "127.0.0.1:0",
			TrustedProxies:            []string{"127.0.0.1"},
			HTTPServerShutdownTimeout: time.Second,
			MailTransport:             appconfig.MailTransportNone,
			MailFrom:                  "Vila Abandonada <no-reply@vila-abandonada.test>",
			PasswordResetURL:          "https://vila-abandonada.test/reset-password",
			PasswordResetTokenTTL:     time.Hour,
			SensitiveRateLimitWindow:  time.Minute,
		},
		AppContext: appcontext.Declare(appcontext.EnvTest),
	}
}

// SQLite opens a private in-memory database with foreign keys enforced and the schema created.
func SQLite(lc fx.Lifecycle) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	if err != nil {
		return nil, err
	}
	// a single connection keeps the in-memory database and its pragmas alive
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}
	if err := repo.CreateSchema(ctx, db); err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})

	return db, nil
}

func infraModule() fx.Option {
	return fx.Module("infra.test", fx.Provide(
		SQLite,
		func() *redis.Client { return nil },
		func() *redsync.Redsync { return nil },
		func() (*nats.Conn, nats.JetStreamContext) { return nil, nil },
		func() *s3.Client { return nil },
	))
}

// Populate starts the graph built from Config and fills targets. The graph is stopped
// when the test ends.
func Populate(t testing.TB, targets ...any) {
	PopulateWith(t, Config(), nil, targets...)
}

// PopulateWith is Populate with a custom configuration and extra options, e.g. fx.Decorate.
func PopulateWith(t testing.TB, conf *appconfig.Config, extra []fx.Option, targets ...any) {
	// for testing, logger is too annoying. therefore, we use a NopLogger here
	opts := []fx.Option{fx.NopLogger}
	opts = append(opts, app.ProvideOptions(conf, infraModule())...)
	opts = append(opts, extra...)
	opts = append(opts, fx.Populate(targets...))

	log.Logger = log.Logger.Output(zerolog.NewTestWriter(t))

	fxApp := fxtest.New(t, opts...)
	fxApp.RequireStart()
	t.Cleanup(fxApp.RequireStop)
}
