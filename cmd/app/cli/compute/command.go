package compute

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "github.com/tomvercaut/c-art-2-volume-changes/cmd/app/cli"
	"github.com/tomvercaut/c-art-2-volume-changes/internal/app/appconfig"
	"github.com/tomvercaut/c-art-2-volume-changes/internal/pkg/bininfo"
	"github.com/tomvercaut/c-art-2-volume-changes/internal/pkg/logger"
	"github.com/tomvercaut/c-art-2-volume-changes/internal/service"
	"github.com/tomvercaut/c-art-2-volume-changes/internal/util"
)

const (
	flagFile      = "file"
	flagResults   = "results"
	flagXLSX      = "xlsx"
	flagPrecision = "precision"
	flagLogLevel  = "log-level"
)

type CommandDeps struct {
	fx.In

	Pipeline *service.Pipeline
}

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     flagFile,
			Aliases:  []string{"f"},
			Usage:    "CSV input file [semicolon delimited]",
			Required: true,
		},
		&cli.StringFlag{
			Name:        flagResults,
			Aliases:     []string{"r"},
			Usage:       "JSON file where the results are written to",
			DefaultText: "volume_changes_stats.json",
		},
		&cli.StringFlag{
			Name:  flagXLSX,
			Usage: "also write the results as a spreadsheet to this file",
		},
		&cli.IntFlag{
			Name:        flagPrecision,
			Usage:       "number of decimals reported values are rounded to",
			DefaultText: "3",
		},
		&cli.StringFlag{
			Name:        flagLogLevel,
			Usage:       "minimum log level: trace, debug, info, warn or error",
			DefaultText: "info",
		},
	}
}

// Action computes the report. Flags take precedence over the VOLUME_CHANGES_* environment.
func Action(c *cli.Context) error {
	conf, err := appconfig.Parse()
	if err != nil {
		return err
	}
	if c.IsSet(flagLogLevel) {
		level := c.String(flagLogLevel)
		if err := util.NewValidator().Var(level, "caseinsensitiveoneof=trace debug info warn error"); err != nil {
			return errors.Wrapf(err, "invalid --%s %q", flagLogLevel, level)
		}
		conf.LogLevel = level
	}
	logger.Configure(conf)

	opts := service.RunOptions{
		InputPath:   c.String(flagFile),
		ResultsPath: conf.ResultsPath,
		XLSXPath:    c.String(flagXLSX),
		Precision:   conf.Precision,
	}
	if c.IsSet(flagResults) {
		opts.ResultsPath = c.String(flagResults)
	}
	if c.IsSet(flagPrecision) {
		opts.Precision = c.Int(flagPrecision)
	}

	log.Debug().
		Str("version", bininfo.Version).
		Str("buildTime", bininfo.BuildTime).
		Interface("options", opts).
		Msg("starting")

	var deps CommandDeps
	if err := cliapp.Populate(conf, &deps); err != nil {
		return err
	}

	_, err = deps.Pipeline.Run(c.Context, opts)
	return err
}
