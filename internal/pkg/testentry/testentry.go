package testentry

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/tomvercaut/c-art-2-volume-changes/internal/app/appconfig"
	"github.com/tomvercaut/c-art-2-volume-changes/internal/appentry"
)

// DefaultConfig is the configuration services are built with in tests: environment defaults,
// two workers so that the concurrent paths are exercised.
func DefaultConfig() *appconfig.Config {
	return &appconfig.Config{
		ConfigSpec: appconfig.ConfigSpec{
			LogLevel:    "debug",
			Workers:     2,
			Precision:   3,
			ResultsPath: "volume_changes_stats.json",
		},
	}
}

func Populate(t zerolog.TestingLog, targets ...any) {
	PopulateWithConfig(t, DefaultConfig(), targets...)
}

func PopulateWithConfig(t zerolog.TestingLog, conf *appconfig.Config, targets ...any) {
	log.Logger = zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)

	// for testing, logger is too annoying. therefore, we use a NopLogger here
	opts := appentry.ProvideOptions(conf)
	opts = append(opts, fx.NopLogger)
	opts = append(opts, fx.Populate(targets...))

	app := fx.New(
		opts...,
	)

	if err := app.Err(); err != nil {
		panic(err)
	}
}
