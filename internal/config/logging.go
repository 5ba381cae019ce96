package config

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/mycarta/wind-calculator-v3/internal/logging"
)

// bootstrapLogger is used before the CLI has configured logging, e.g. while
// the config file itself is being read.
//
//nolint:gochecknoglobals // Guarded bootstrap logger shared by config loaders.
var (
	bootstrapLogger zerolog.Logger
	bootstrapOnce   sync.Once
)

// Logger returns the bootstrap logger: logging.DefaultConfig, i.e. console
// output at warn level on stderr.
func Logger() *zerolog.Logger {
	bootstrapOnce.Do(func() {
		bootstrapLogger = logging.ComponentLogger(logging.NewLogger(logging.DefaultConfig()), "config")
	})
	return &bootstrapLogger
}

// ToLoggingConfig converts config.LoggingConfig to logging.Config.
//
//   - Level, Format and Caller are copied directly
//   - If File is set, Output becomes "file"
//   - If File is empty, Output defaults to "stderr"
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
		Caller: lc.Caller,
	}
}

// GetLoggingConfig returns a copy of the Logging section of the global
// configuration. Flag overrides such as --debug are applied by the caller.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}
