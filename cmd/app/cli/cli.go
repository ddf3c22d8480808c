package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/vila-abandonada/backend/internal/app"
	"github.com/vila-abandonada/backend/internal/app/appcontext"
)

func Start(module fx.Option) {
	if err := app.New(appcontext.Declare(appcontext.EnvCLI), module).Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to start app for script")
	}
}
