package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIOrigin != defaultAPIOrigin {
		t.Fatalf("APIOrigin = %q, want %q", cfg.APIOrigin, defaultAPIOrigin)
	}
	if cfg.BridgeBind != defaultBridgeBind {
		t.Fatalf("BridgeBind = %q, want %q", cfg.BridgeBind, defaultBridgeBind)
	}
	if cfg.Locale != "ru" {
		t.Fatalf("Locale = %q, want ru", cfg.Locale)
	}
	if cfg.AccentSingleFlight {
		t.Fatalf("AccentSingleFlight = true, want false by default")
	}

	wantLogDir, err := expandPath(defaultLogDir)
	if err != nil {
		t.Fatalf("expandPath(defaultLogDir) returned error: %v", err)
	}
	if cfg.LogDir != wantLogDir {
		t.Fatalf("LogDir = %q, want %q", cfg.LogDir, wantLogDir)
	}
	if cfg.LogPath() != filepath.Join(wantLogDir, "shikidesk.log") {
		t.Fatalf("LogPath = %q, want %q", cfg.LogPath(), filepath.Join(wantLogDir, "shikidesk.log"))
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_origin = "  https://shiki.example/  "
user_agent = " tester/1 "
bridge_bind = "  10.0.0.5:9999  "
log_level = " DEBUG "
log_dir = "  ~/.shikidesk/logs  "
locale = "EN"
accent_single_flight = true
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIOrigin != "https://shiki.example" {
		t.Fatalf("APIOrigin = %q, want %q", cfg.APIOrigin, "https://shiki.example")
	}
	if cfg.UserAgent != "tester/1" {
		t.Fatalf("UserAgent = %q, want %q", cfg.UserAgent, "tester/1")
	}
	if cfg.BridgeBind != "10.0.0.5:9999" {
		t.Fatalf("BridgeBind = %q, want %q", cfg.BridgeBind, "10.0.0.5:9999")
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Locale != "en" {
		t.Fatalf("Locale = %q, want en", cfg.Locale)
	}
	if !cfg.AccentSingleFlight {
		t.Fatalf("AccentSingleFlight = false, want true")
	}
	if !strings.HasPrefix(cfg.LogDir, home) {
		t.Fatalf("LogDir = %q, want it under HOME %q", cfg.LogDir, home)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_origin = "   "
bridge_bind = ""
log_dir = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIOrigin != defaultAPIOrigin {
		t.Fatalf("APIOrigin = %q, want %q", cfg.APIOrigin, defaultAPIOrigin)
	}
	if cfg.BridgeBind != defaultBridgeBind {
		t.Fatalf("BridgeBind = %q, want %q", cfg.BridgeBind, defaultBridgeBind)
	}
	wantLogDir, err := expandPath(defaultLogDir)
	if err != nil {
		t.Fatalf("expandPath(defaultLogDir) returned error: %v", err)
	}
	if cfg.LogDir != wantLogDir {
		t.Fatalf("LogDir = %q, want %q", cfg.LogDir, wantLogDir)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_origin = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestLogPath_DefaultsWhenLogDirEmpty(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	var cfg Config
	got := cfg.LogPath()
	if !strings.HasPrefix(got, home) {
		t.Fatalf("LogPath = %q, want it under HOME %q", got, home)
	}
	if !strings.HasSuffix(got, filepath.FromSlash("/shikidesk.log")) {
		t.Fatalf("LogPath = %q, want it to end with /shikidesk.log", got)
	}
}
