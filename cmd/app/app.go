package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/tomvercaut/c-art-2-volume-changes/cmd/app/cli/compute"
	"github.com/tomvercaut/c-art-2-volume-changes/internal/pkg/bininfo"
	"github.com/tomvercaut/c-art-2-volume-changes/internal/pkg/volerr"
)

func New() *cli.App {
	return &cli.App{
		Name:        "volume-changes",
		Usage:       "aggregate tumor and target volume changes between treatment phases",
		Description: "Reads per-patient GTV, GTV_N and PTV_DP volumes of three treatment phases from a semicolon delimited table and writes, per ROI and pair of consecutive phases, the average volume change, its corrected standard deviation and the number of patients as JSON.",
		Version:     bininfo.Version,
		Flags:       compute.Flags(),
		Action:      compute.Action,
	}
}

func Run() {
	app := New()
	if err := app.Run(os.Args); err != nil {
		log.Error().Err(err).Str("code", volerr.Code(err)).Msg("failed to run app")
		os.Exit(volerr.ExitCode(err))
	}
}
