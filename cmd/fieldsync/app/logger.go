package app

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the application logger from configuration. Console output
// for interactive runs, JSON when requested or when stderr is not a
// terminal.
func NewLogger(config *Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var logger zerolog.Logger
	if useConsole(config) {
		writer := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
		logger = zerolog.New(writer)
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(level).With().Timestamp().Logger()
}

func useConsole(config *Config) bool {
	switch config.LogFormat {
	case "json":
		return false
	case "console":
		return true
	}
	fileInfo, _ := os.Stderr.Stat()
	return fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0
}
