package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" DEBUG ", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.raw); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "curio.log")

	logger, err := New(path, "info")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("fetched objects", "count", 3)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), data)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("line is not JSON: %v", err)
	}
	if record["msg"] != "fetched objects" || record["level"] != "INFO" || record["app"] != "curio" {
		t.Fatalf("record = %v", record)
	}
	if logger.Path() != path {
		t.Fatalf("Path() = %q, want %q", logger.Path(), path)
	}
}

func TestSetLevel_ChangesFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, "error")
	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info written at error level: %q", buf.String())
	}
	logger.SetLevel("debug")
	if logger.Level() != slog.LevelDebug {
		t.Fatalf("Level() = %v, want debug", logger.Level())
	}
	logger.Debug("kept")
	if !strings.Contains(buf.String(), `"msg":"kept"`) {
		t.Fatalf("debug line missing: %q", buf.String())
	}
}

func TestNew_EmptyPathDiscards(t *testing.T) {
	logger, err := New("", "debug")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("nowhere")
	if logger.Path() != "" {
		t.Fatalf("Path() = %q, want empty", logger.Path())
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	logger.SetLevel("debug")
	if logger.Level() != slog.LevelInfo || logger.Path() != "" || logger.Close() != nil {
		t.Fatalf("nil logger methods misbehaved")
	}
}
