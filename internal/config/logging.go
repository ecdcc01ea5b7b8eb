package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevelEnv names the variable selecting the log level.
const LogLevelEnv = "WORDSEARCH_LOG_LEVEL"

// ParseLevel maps debug, info, warn and error to slog levels. Anything else
// is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// NewLogger returns a text logger writing to w at the level named by
// WORDSEARCH_LOG_LEVEL.
func NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(os.Getenv(LogLevelEnv)),
	}))
}
