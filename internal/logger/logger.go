package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/ERTG-BOTS/AchieverBot/internal/config"
)

// New creates a preconfigured slog.Logger using the configured level.
func New(cfg *config.Config) *slog.Logger {
	return newJSON(os.Stdout, cfg.LogLevel)
}

func newJSON(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
