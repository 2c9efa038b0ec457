package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if !p.CopyOnEnter() {
		t.Fatal("CopyOnEnter = false by default, want true")
	}
	if p.DebounceMS != defaultDebounceMS {
		t.Fatalf("DebounceMS = %d, want %d", p.DebounceMS, defaultDebounceMS)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "klipview")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	prefsFile := filepath.Join(prefsDir, "prefs.toml")
	content := "theme = \"Slate\"\nenter_copies_selection = false\ndebounce_ms = 150\n"
	if err := os.WriteFile(prefsFile, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Slate")
	}
	if p.CopyOnEnter() {
		t.Fatal("CopyOnEnter = true, want false from file")
	}
	if p.DebounceMS != 150 {
		t.Fatalf("DebounceMS = %d, want 150", p.DebounceMS)
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "custom.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = \"Slate\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Slate")
	}
}

func TestLoad_CorruptFileDegradesGracefully(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "broken.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = ["), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme || p.DebounceMS != defaultDebounceMS {
		t.Fatalf("prefs = %+v, want defaults after corrupt file", p)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "nested", "prefs.toml")

	off := false
	want := Prefs{Theme: "Nord", EnterCopiesSelection: &off, DebounceMS: 120}
	if err := Save(prefsFile, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got.Theme != "Nord" || got.CopyOnEnter() || got.DebounceMS != 120 {
		t.Fatalf("round trip = %+v, want %+v", got, want)
	}
}
