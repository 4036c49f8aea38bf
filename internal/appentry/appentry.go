package appentry

import (
	"go.uber.org/fx"

	"github.com/tomvercaut/c-art-2-volume-changes/internal/app/appconfig"
	"github.com/tomvercaut/c-art-2-volume-changes/internal/service"
)

// ProvideOptions returns the options of the application graph for conf. The fx event logger is
// left to the caller.
func ProvideOptions(conf *appconfig.Config) []fx.Option {
	opts := []fx.Option{
		// Misc
		fx.Supply(conf),

		// Services
		service.Module(),
	}

	return opts
}
