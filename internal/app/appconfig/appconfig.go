package appconfig

import (
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tomvercaut/c-art-2-volume-changes/internal/util"
)

const EnvPrefix = "volume_changes"

// Parse reads the configuration from the environment, after loading the optional dotenv files
// given (".env" when none are).
func Parse(dotenvFiles ...string) (*Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, file := range dotenvFiles {
		err := godotenv.Load(file)
		if errors.Is(err, fs.ErrNotExist) {
			log.Trace().Str("file", file).Msg("no dotenv file found")
		} else if err != nil {
			log.Warn().Err(err).Str("file", file).Msg("failed to load dotenv file")
		}
	}

	var config ConfigSpec
	err := envconfig.Process(EnvPrefix, &config)
	if err != nil {
		_ = envconfig.Usage(EnvPrefix, &config)
		return nil, errors.Wrap(err, "failed to parse configuration")
	}

	if err := util.NewValidator().Struct(config); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &Config{
		ConfigSpec: config,
	}, nil
}
