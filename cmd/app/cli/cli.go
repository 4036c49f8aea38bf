package cli

import (
	"go.uber.org/fx"

	"github.com/tomvercaut/c-art-2-volume-changes/internal/app/appconfig"
	"github.com/tomvercaut/c-art-2-volume-changes/internal/appentry"
	"github.com/tomvercaut/c-art-2-volume-changes/internal/pkg/logger"
)

// Populate builds the application graph for conf and fills targets from it.
func Populate(conf *appconfig.Config, targets ...any) error {
	opts := appentry.ProvideOptions(conf)
	opts = append(opts, fx.WithLogger(logger.Fx), fx.Populate(targets...))
	return fx.New(opts...).Err()
}
