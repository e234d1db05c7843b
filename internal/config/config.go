package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config captures the settings shikidesk needs at startup.
type Config struct {
	APIOrigin          string `toml:"api_origin"`
	UserAgent          string `toml:"user_agent"`
	BridgeBind         string `toml:"bridge_bind"`
	LogLevel           string `toml:"log_level"`
	LogDir             string `toml:"log_dir"`
	Locale             string `toml:"locale"`
	AccentSingleFlight bool   `toml:"accent_single_flight"`
}

const (
	defaultConfigPath = "~/.config/shikidesk/config.toml"
	defaultAPIOrigin  = "https://shikimori.one"
	defaultUserAgent  = "shikidesk/0.1"
	defaultBridgeBind = "127.0.0.1:7489"
	defaultLogLevel   = "info"
	defaultLogDir     = "~/.local/share/shikidesk/logs"
	defaultLocale     = "ru"
	logFileName       = "shikidesk.log"
)

// Load reads the TOML config at path, falling back to the default location
// when path is empty. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Config{
		APIOrigin:  defaultAPIOrigin,
		UserAgent:  defaultUserAgent,
		BridgeBind: defaultBridgeBind,
		LogLevel:   defaultLogLevel,
		LogDir:     mustExpand(defaultLogDir),
		Locale:     defaultLocale,
	}

	resolved, err := resolvePath(path)
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var raw Config
	if err := toml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIOrigin); v != "" {
		cfg.APIOrigin = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(raw.UserAgent); v != "" {
		cfg.UserAgent = v
	}
	if v := strings.TrimSpace(raw.BridgeBind); v != "" {
		cfg.BridgeBind = v
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		dir, err := expandPath(v)
		if err != nil {
			return cfg, fmt.Errorf("log_dir: %w", err)
		}
		cfg.LogDir = dir
	}
	if v := strings.ToLower(strings.TrimSpace(raw.Locale)); v != "" {
		cfg.Locale = v
	}
	cfg.AccentSingleFlight = raw.AccentSingleFlight

	return cfg, nil
}

// LogPath is the file the interactive browser writes its log to.
func (c Config) LogPath() string {
	dir := c.LogDir
	if strings.TrimSpace(dir) == "" {
		dir = mustExpand(defaultLogDir)
	}
	return filepath.Join(dir, logFileName)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultConfigPath
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

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("empty path")
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}
