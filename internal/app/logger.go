package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aidflow/fundflow-backend/internal/config"
)

const serviceName = "fundflow-backend"

// NewLogger builds the process logger on stderr and installs it as the slog
// default. JSON is meant for deployments; text adds source locations for
// local runs. Every record carries the service name and build version.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	text := !strings.EqualFold(cfg.Format, "json")
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: text,
	}

	var h slog.Handler = slog.NewJSONHandler(w, opts)
	if text {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With(
		slog.String("service", serviceName),
		slog.String("version", Version),
	)
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}
