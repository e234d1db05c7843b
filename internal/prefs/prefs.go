// Package prefs handles shikidesk user settings persistence.
// Settings are stored in ~/.config/shikidesk/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds the user-editable settings of shikidesk.
type Prefs struct {
	Theme             string   `toml:"theme" json:"theme"`
	NSFW              bool     `toml:"nsfw" json:"nsfw"`
	AccentColor       string   `toml:"accent_color" json:"accent_color"`
	PreferredLanguage string   `toml:"preferred_language" json:"preferred_language"`
	ViewMode          string   `toml:"view_mode" json:"view_mode"`
	History           []string `toml:"history" json:"history"`
}

// MaxHistory is the number of search queries kept.
const MaxHistory = 10

const (
	defaultPrefsPath = "~/.config/shikidesk/prefs.toml"

	defaultTheme       = "dark"
	defaultAccentColor = "#3b82f6"
	defaultLanguage    = "russian"
	defaultViewMode    = "grid"
)

var (
	themes    = []string{"dark", "light", "system"}
	languages = []string{"russian", "original"}
	viewModes = []string{"grid", "list"}
)

// Themes lists the accepted theme names in cycling order.
func Themes() []string {
	return append([]string(nil), themes...)
}

// Default returns the settings used when nothing has been saved.
func Default() Prefs {
	return Prefs{
		Theme:             defaultTheme,
		AccentColor:       defaultAccentColor,
		PreferredLanguage: defaultLanguage,
		ViewMode:          defaultViewMode,
	}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// AllowAdultContent reports whether adult entries may be requested.
func (p Prefs) AllowAdultContent() bool {
	return p.NSFW
}

// Normalize replaces unknown or blank values with their defaults.
func (p Prefs) Normalize() Prefs {
	p.Theme = oneOf(p.Theme, themes, defaultTheme)
	p.PreferredLanguage = oneOf(p.PreferredLanguage, languages, defaultLanguage)
	p.ViewMode = oneOf(p.ViewMode, viewModes, defaultViewMode)
	if p.AccentColor = strings.TrimSpace(p.AccentColor); p.AccentColor == "" {
		p.AccentColor = defaultAccentColor
	}
	if len(p.History) > MaxHistory {
		p.History = p.History[:MaxHistory]
	}
	return p
}

// AddHistory returns a copy of p with query moved to the front of the
// history. Surrounding whitespace is dropped and blank queries are ignored.
func (p Prefs) AddHistory(query string) Prefs {
	query = strings.TrimSpace(query)
	if query == "" {
		return p
	}
	history := make([]string, 0, MaxHistory)
	history = append(history, query)
	for _, q := range p.History {
		if q == query {
			continue
		}
		if len(history) == MaxHistory {
			break
		}
		history = append(history, q)
	}
	p.History = history
	return p
}

// ClearHistory returns a copy of p without search history.
func (p Prefs) ClearHistory() Prefs {
	p.History = nil
	return p
}

// Load reads preferences from the given path, falling back to defaults if missing.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Default(), nil
	}

	prefs := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs, nil // Graceful degradation
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Default(), nil // Graceful degradation
	}

	return prefs.Normalize(), nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p.Normalize())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

func oneOf(value string, allowed []string, fallback string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if v == a {
			return a
		}
	}
	return fallback
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
