package script_export_gamedata

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/vila-abandonada/backend/internal/service"
)

type CommandDeps struct {
	fx.In

	GameDataService *service.GameData
}

func Command(depsFn func() CommandDeps) *cli.Command {
	return &cli.Command{
		Name:        "export-gamedata",
		Description: "upload the locations, items and connections as gzipped JSON lines to the export bucket",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "stamp",
				Usage: "export stamp in the 20060102T150405Z layout; defaults to now",
			},
		},
		Action: func(ctx *cli.Context) error {
			return run(ctx, depsFn(), ctx.String("stamp"))
		},
	}
}
