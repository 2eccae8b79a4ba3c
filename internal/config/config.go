// Package config loads curio's configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings curio needs at runtime.
type Config struct {
	APIURL         string
	BasePath       string
	RequestTimeout time.Duration
	LogPath        string
	LogLevel       string
	UserAgent      string
	FilterTypes    []string
	SortKeys       []string
}

const (
	defaultConfigPath     = "~/.config/curio/config.toml"
	defaultAPIURL         = "http://127.0.0.1:8080"
	defaultBasePath       = "/"
	defaultLogPath        = "~/.local/state/curio/curio.log"
	defaultLogLevel       = "info"
	defaultRequestTimeout = 5 * time.Second

	// EnvAPIURL overrides api_url at deploy time.
	EnvAPIURL = "CURIO_API_URL"
	// EnvBasePath overrides base_path at deploy time.
	EnvBasePath = "CURIO_BASE_PATH"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		BasePath:       defaultBasePath,
		RequestTimeout: defaultRequestTimeout,
		LogPath:        mustExpand(defaultLogPath),
		LogLevel:       defaultLogLevel,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
// Environment overrides are applied last.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL                string   `toml:"api_url"`
		BasePath              string   `toml:"base_path"`
		RequestTimeoutSeconds int      `toml:"request_timeout_seconds"`
		LogPath               string   `toml:"log_path"`
		LogLevel              string   `toml:"log_level"`
		UserAgent             string   `toml:"user_agent"`
		FilterTypes           []string `toml:"filter_types"`
		SortKeys              []string `toml:"sort_keys"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.BasePath); v != "" {
		cfg.BasePath = v
	}
	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		cfg.LogLevel = v
	}
	cfg.UserAgent = strings.TrimSpace(raw.UserAgent)
	cfg.FilterTypes = cleanList(raw.FilterTypes)
	cfg.SortKeys = cleanList(raw.SortKeys)

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBasePath)); v != "" {
		cfg.BasePath = v
	}
}

func cleanList(values []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
