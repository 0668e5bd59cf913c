package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sandeepkv93/enjaz/internal/config"
)

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{Level: "info", Format: "json"}, &buf)
	logger.Info("test message", slog.String("key", "goals"))

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("JSON handler should produce valid JSON: %v", err)
	}
	if m["msg"] != "test message" || m["key"] != "goals" {
		t.Fatalf("unexpected record: %v", m)
	}
}

func TestNewLogger_TextFormatIncludesSource(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{Level: "debug", Format: "text"}, &buf)
	logger.Debug("source test")

	if !strings.Contains(buf.String(), "source=") {
		t.Errorf("text format should include source information, got %q", buf.String())
	}
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level, got %q", buf.String())
	}
}

func TestNewLogger_SetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{Level: "info", Format: "json"}, &buf)
	if slog.Default() != logger {
		t.Error("NewLogger should set the default logger")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestOpenLogFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "enjaz.log")
	f, err := OpenLogFile(path)
	if err != nil {
		t.Fatalf("OpenLogFile: %v", err)
	}
	if _, err := f.WriteString("line\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "line\n" {
		t.Fatalf("unexpected log contents %q, err %v", data, err)
	}
}
