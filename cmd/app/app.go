package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/vila-abandonada/backend/cmd/app/cli/runscript"
	"github.com/vila-abandonada/backend/cmd/app/server"
	"github.com/vila-abandonada/backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "vilabackend",
		Description: "Content backend of the Vila Abandonada adventure game. Built with Go, fiber, bun and go.uber.org/fx.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			runscript.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
