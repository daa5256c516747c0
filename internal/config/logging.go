package config

import (
	"log/slog"
	"os"
	"strings"
)

// LogLevelEnv overrides the log level chosen by the --verbose flag.
const LogLevelEnv = "SITESMITH_LOG_LEVEL"

// ParseLogLevel resolves the slog level from the verbose flag and the
// SITESMITH_LOG_LEVEL environment variable; the variable wins when set.
func ParseLogLevel(verbose bool) slog.Level {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv(LogLevelEnv))) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return level
}
