// Package logger builds the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// EnvDev is the environment that gets colored console output.
const EnvDev = "dev"

// ParseLevel maps a level name to a slog.Level. Unknown names are Info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a tint console logger in dev and a JSON logger otherwise.
func New(w io.Writer, env, level string) *slog.Logger {
	lvl := ParseLevel(level)
	if env == EnvDev {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// Setup builds the logger and installs it as the slog default.
func Setup(w io.Writer, env, level string) *slog.Logger {
	l := New(w, env, level)
	slog.SetDefault(l)
	return l
}
