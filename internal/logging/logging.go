// Package logging builds curio's structured logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ParseLevel maps a config string to a slog level. Unknown values map to info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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

// Logger wraps the slog logger together with its adjustable level and the
// file it writes to.
type Logger struct {
	*slog.Logger
	level *slog.LevelVar
	file  *os.File
	path  string
}

// New opens path for appending and returns a JSON logger writing to it.
// The TUI owns the terminal, so when the file cannot be opened the logger
// discards output instead of falling back to stdout.
func New(path, level string) (*Logger, error) {
	lv := &slog.LevelVar{}
	lv.Set(ParseLevel(level))

	path = strings.TrimSpace(path)
	if path == "" {
		return newLogger(io.Discard, lv, nil, ""), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return newLogger(io.Discard, lv, nil, ""), fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return newLogger(io.Discard, lv, nil, ""), fmt.Errorf("open log file: %w", err)
	}
	return newLogger(file, lv, file, path), nil
}

// NewWriter returns a JSON logger on w. CLI subcommands use it with stderr.
func NewWriter(w io.Writer, level string) *Logger {
	lv := &slog.LevelVar{}
	lv.Set(ParseLevel(level))
	return newLogger(w, lv, nil, "")
}

func newLogger(w io.Writer, lv *slog.LevelVar, file *os.File, path string) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lv,
		AddSource: false,
	})
	return &Logger{
		Logger: slog.New(handler).With("app", "curio"),
		level:  lv,
		file:   file,
		path:   path,
	}
}

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(raw string) {
	if l == nil {
		return
	}
	l.level.Set(ParseLevel(raw))
}

// Level reports the current minimum level.
func (l *Logger) Level() slog.Level {
	if l == nil {
		return slog.LevelInfo
	}
	return l.level.Level()
}

// Path returns the file the logger writes to, or "" when it has none.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Close releases the log file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
