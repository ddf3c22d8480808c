package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/vila-abandonada/backend/internal/app/appconfig"
	"github.com/vila-abandonada/backend/internal/app/appcontext"
	"github.com/vila-abandonada/backend/internal/controller"
	"github.com/vila-abandonada/backend/internal/infra"
	"github.com/vila-abandonada/backend/internal/pkg/logger"
	"github.com/vila-abandonada/backend/internal/pkg/notify"
	"github.com/vila-abandonada/backend/internal/repo"
	"github.com/vila-abandonada/backend/internal/server"
	"github.com/vila-abandonada/backend/internal/service"
	"github.com/vila-abandonada/backend/internal/workers/mailwkr"
	"github.com/vila-abandonada/backend/internal/workers/sweepwkr"
)

func Options(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	// logger and configuration are the only two things that are not in the fx graph
	// because some other packages need them to be initialized before fx starts
	logger.Configure(conf)

	opts := []fx.Option{
		// fx meta
		fx.WithLogger(logger.Fx),
	}
	opts = append(opts, ProvideOptions(conf, infra.Module())...)
	return append(opts, additionalOpts...)
}

// ProvideOptions assembles the graph around conf. infraModule is swapped by tests for
// one backed by an in-memory database.
func ProvideOptions(conf *appconfig.Config, infraModule fx.Option) []fx.Option {
	return []fx.Option{
		// Misc
		fx.Supply(conf),
		fx.Provide(notify.New),

		// Infrastructures
		infraModule,

		// Servers
		server.Module(),

		// Repositories
		repo.Module(),

		// Services
		service.Module(),

		// Global Singleton Inits: Keep those before controllers to ensure they are initialized
		// before controllers are registered as controllers are also fx#Invoke functions which
		// are called in the order of their registration.
		fx.Invoke(infra.SentryInit),
		fx.Invoke(infra.TracingInit),

		// Controllers
		controller.Module(),

		// Workers
		fx.Invoke(mailwkr.Start),
		fx.Invoke(sweepwkr.Start),

		// fx Extra Options
		fx.StartTimeout(10 * time.Second),
		// StopTimeout is not typically needed, since we're using fiber's Shutdown(),
		// in which fiber has its own IdleTimeout for controlling the shutdown timeout.
		// It acts as a countermeasure in case the fiber app is not properly shutting down.
		fx.StopTimeout(5 * time.Minute),
	}
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(ctx, additionalOpts...)...)
}
