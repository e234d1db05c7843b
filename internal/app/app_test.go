package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/five82/shikidesk/internal/config"
	"github.com/five82/shikidesk/internal/shiki"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestBuildWiresBridge(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "locale = \"en\"\naccent_single_flight = true\n"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")

	c, err := build(cfg, prefsPath, hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	handler := c.bridge(cfg).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/anime?limit=51", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
	var body struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Kind != "validation" {
		t.Fatalf("kind = %q, want validation", body.Kind)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/settings", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"theme":"dark"`) {
		t.Fatalf("settings = %d %s, want default settings", rec.Code, rec.Body.String())
	}
}

func TestBuildNormalizesSchemelessOrigin(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "api_origin = \"shikimori.one/api/\"\n"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	c, err := build(cfg, filepath.Join(t.TempDir(), "prefs.toml"), hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	main := "/system/animes/original/1.jpg"
	summary := c.catalog.Mapper().AnimeSummary(shiki.Media{ID: 1, Poster: &shiki.Poster{MainURL: &main}})
	if summary.URL == nil || *summary.URL != "https://shikimori.one/animes/1" {
		t.Fatalf("URL = %v, want https://shikimori.one/animes/1", summary.URL)
	}
	if summary.PosterURL == nil || *summary.PosterURL != "https://shikimori.one"+main {
		t.Fatalf("PosterURL = %v, want absolute https URL", summary.PosterURL)
	}
}

func TestBuildRejectsInvalidOrigin(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "api_origin = \"https://exa mple.com\"\n"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if _, err := build(cfg, filepath.Join(t.TempDir(), "prefs.toml"), hclog.NewNullLogger()); err == nil {
		t.Fatalf("expected error for invalid origin")
	}
}

func TestNewLoggerUsesFileOutsideServeMode(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{LogLevel: "debug", LogDir: dir}

	logger, closer, err := newLogger(cfg, false)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(cfg.LogPath())
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("log file = %q, want hello", data)
	}
}
