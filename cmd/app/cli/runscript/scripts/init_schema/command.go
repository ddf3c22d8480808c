package script_init_schema

import (
	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

type CommandDeps struct {
	fx.In

	DB *bun.DB
}

func Command(depsFn func() CommandDeps) *cli.Command {
	return &cli.Command{
		Name:        "init-schema",
		Description: "create every table and index that does not exist yet",
		Action: func(ctx *cli.Context) error {
			return run(ctx, depsFn())
		},
	}
}
