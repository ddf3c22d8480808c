package script_import_gamedata

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/vila-abandonada/backend/internal/service"
)

func run(ctx *cli.Context, deps CommandDeps, file string) error {
	if !service.IsBundleFile(file) {
		return errors.Errorf("unsupported bundle %q: expected a .yaml, .yml or .json file", file)
	}

	log.Info().Str("file", file).Msg("running script")

	result, err := deps.GameDataService.ImportFile(ctx.Context, file)
	if err != nil {
		return errors.Wrap(err, "failed to import game data")
	}

	log.Info().Interface("result", result).Msg("script finished")
	return nil
}
