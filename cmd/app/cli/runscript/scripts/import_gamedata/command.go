package script_import_gamedata

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
		Name:        "import-gamedata",
		Description: "bulk save a YAML or JSON game data bundle",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "path of the bundle, shaped like the bulk save request body",
				Required: true,
			},
		},
		Action: func(ctx *cli.Context) error {
			return run(ctx, depsFn(), ctx.String("file"))
		},
	}
}
