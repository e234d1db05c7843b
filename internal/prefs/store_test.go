package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_UpdatePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	s := NewStore(path, Default())

	got, err := s.Update(func(p Prefs) Prefs {
		p.NSFW = true
		return p.AddHistory("evangelion")
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !got.NSFW || !s.AllowAdultContent() {
		t.Fatalf("NSFW not applied: %#v", got)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !loaded.NSFW || len(loaded.History) != 1 || loaded.History[0] != "evangelion" {
		t.Fatalf("persisted prefs = %#v, want nsfw and history", loaded)
	}
}

func TestStore_FailedSaveKeepsCurrent(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	s := NewStore(filepath.Join(blocker, "prefs.toml"), Default())

	if _, err := s.Update(func(p Prefs) Prefs { p.Theme = "light"; return p }); err == nil {
		t.Fatalf("Update returned nil error, want save failure")
	}
	if got := s.Get().Theme; got != defaultTheme {
		t.Fatalf("Theme = %q, want %q after failed save", got, defaultTheme)
	}
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "prefs.toml"), Default().AddHistory("a"))
	p := s.Get()
	p.History[0] = "mutated"
	if got := s.Get().History[0]; got != "a" {
		t.Fatalf("History[0] = %q, want a", got)
	}
}
