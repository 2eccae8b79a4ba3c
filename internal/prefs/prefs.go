// Package prefs persists curio's per-user preferences.
// Preferences are stored in ~/.config/curio/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// MaxRecent bounds the recently viewed list.
const MaxRecent = 10

// Prefs holds state that survives between curio sessions.
type Prefs struct {
	Theme    string  `toml:"theme"`
	LastPath string  `toml:"last_path,omitempty"`
	Recent   []int64 `toml:"recent,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/curio/prefs.toml"
	defaultTheme     = "Nightfox"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Defaults returns the preferences used on first run.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme}
}

// Load reads preferences from path. A missing or unreadable file yields the
// defaults; the error is returned only so callers can log it.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Defaults(), err
	}

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}
		return Defaults(), fmt.Errorf("read prefs: %w", err)
	}

	var p Prefs
	if err := toml.Unmarshal(bytes, &p); err != nil {
		return Defaults(), fmt.Errorf("parse prefs: %w", err)
	}
	return p.normalize(), nil
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p.normalize())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// Remember moves id to the front of the recently viewed list.
func (p Prefs) Remember(id int64) Prefs {
	if id <= 0 {
		return p
	}
	recent := make([]int64, 0, len(p.Recent)+1)
	recent = append(recent, id)
	for _, existing := range p.Recent {
		if existing != id {
			recent = append(recent, existing)
		}
	}
	p.Recent = recent
	return p.normalize()
}

func (p Prefs) normalize() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.LastPath = strings.TrimSpace(p.LastPath)

	var recent []int64
	for _, id := range p.Recent {
		if id <= 0 || slices.Contains(recent, id) {
			continue
		}
		recent = append(recent, id)
		if len(recent) == MaxRecent {
			break
		}
	}
	p.Recent = recent
	return p
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
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
