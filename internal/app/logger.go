package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/enjaz/internal/config"
)

// NewLogger builds the process logger from cfg and installs it as the slog
// default, so packages that only hold slog.Default() log to the same file.
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	logger := slog.New(newHandler(cfg, w))
	slog.SetDefault(logger)
	return logger
}

// newHandler picks JSON for "json" and text otherwise. Text records carry
// their source location since they are read by people tailing the file.
func newHandler(cfg config.LogConfig, w io.Writer) slog.Handler {
	format := strings.ToLower(strings.TrimSpace(cfg.Format))
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	opts.AddSource = format == "text"
	return slog.NewTextHandler(w, opts)
}

// OpenLogFile opens path for appending, creating parent directories.
func OpenLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// parseLevel accepts slog's own level names in any case. Anything else is info.
func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
