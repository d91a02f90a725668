package cmd

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogging routes slog through charmbracelet/log on stderr, keeping
// stdout clean for the report and patch output. Called once from the root
// command and again if refit.yml sets logging.level.
func SetupLogging(level string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           parseLevel(level),
		ReportTimestamp: true,
	})
	slog.SetDefault(slog.New(logger))
}

// parseLevel maps a config/flag level name to a log level, defaulting
// unknown names to info.
func parseLevel(name string) log.Level {
	switch name {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
