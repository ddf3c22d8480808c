package script_export_gamedata

import (
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/felixge/fgprof"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/vila-abandonada/backend/internal/pkg/archiver"
)

func run(ctx *cli.Context, deps CommandDeps, stampStr string) error {
	http.DefaultServeMux.Handle("/debug/fgprof", fgprof.Handler())
	go func() {
		log.Print(http.ListenAndServe("127.0.0.1:6060", nil))
	}()

	stamp := time.Now().UTC()
	if stampStr != "" {
		var err error
		stamp, err = time.Parse(archiver.StampLayout, stampStr)
		if err != nil {
			return errors.Wrap(err, "failed to parse stamp")
		}
	}

	log.Info().Time("stamp", stamp).Msg("running script")

	keys, err := deps.GameDataService.Export(ctx.Context, stamp)
	if err != nil {
		if errors.Is(err, archiver.ErrFileAlreadyExists) {
			log.Info().Msg("game data already exported for this stamp")
			return nil
		}
		return errors.Wrap(err, "failed to export game data")
	}

	log.Info().Strs("keys", keys).Msg("script finished")
	return nil
}
