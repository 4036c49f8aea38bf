package appconfig

type ConfigSpec struct {
	// LogLevel is the minimum level of log events written. Valid values are: trace, debug, info, warn, error.
	LogLevel string `split_words:"true" default:"info" validate:"caseinsensitiveoneof=trace debug info warn error"`

	// LogJsonStdout is whether to log JSON lines (instead of pretty-print logs) to the console for the ease of log collection.
	// Logs go to stderr either way, leaving stdout free.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// LogFile is an optional path of a log file kept in addition to the console output. The file is rotated
	// once it grows past 10 MB.
	LogFile string `split_words:"true"`

	// DevMode to indicate development mode. When true, logging is forced to the trace level.
	DevMode bool `split_words:"true"`

	// Workers is the number of goroutines computing per-patient volume differences.
	// Zero means one per CPU.
	Workers int `split_words:"true" default:"0" validate:"gte=0"`

	// Precision is the number of decimals the reported averages, standard deviations and start volumes
	// are rounded to. Rounding only affects the report, never the computation.
	Precision int `split_words:"true" default:"3" validate:"gte=0,lte=15"`

	// ResultsPath is the JSON report written when no --results flag is given.
	ResultsPath string `split_words:"true" default:"volume_changes_stats.json" validate:"nonblank"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec
}
