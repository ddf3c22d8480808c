package runscript

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "github.com/vila-abandonada/backend/cmd/app/cli"
	script_export_gamedata "github.com/vila-abandonada/backend/cmd/app/cli/runscript/scripts/export_gamedata"
	script_import_gamedata "github.com/vila-abandonada/backend/cmd/app/cli/runscript/scripts/import_gamedata"
	script_init_schema "github.com/vila-abandonada/backend/cmd/app/cli/runscript/scripts/init_schema"
)

func depsFn[T any]() func() T {
	return func() T {
		var deps T
		cliapp.Start(fx.Populate(&deps))
		return deps
	}
}

func Command() *cli.Command {
	return &cli.Command{
		Name:        "run-script",
		Description: "run maintenance go scripts",
		Subcommands: []*cli.Command{
			script_init_schema.Command(depsFn[script_init_schema.CommandDeps]()),
			script_import_gamedata.Command(depsFn[script_import_gamedata.CommandDeps]()),
			script_export_gamedata.Command(depsFn[script_export_gamedata.CommandDeps]()),
		},
	}
}
