package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Editor.ViewHeight != 24 {
		t.Errorf("expected view height 24, got %d", cfg.Editor.ViewHeight)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected level info, got %q", cfg.Log.Level)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[editor]
view_height = 40

[search]
case_sensitive = true

[log]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Editor.ViewHeight != 40 {
		t.Errorf("expected view height 40, got %d", cfg.Editor.ViewHeight)
	}
	if !cfg.Search.CaseSensitive {
		t.Error("expected case sensitivity on")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected level debug, got %q", cfg.Log.Level)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
editor:
  view_height: 12
search:
  whole_word: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Editor.ViewHeight != 12 {
		t.Errorf("expected view height 12, got %d", cfg.Editor.ViewHeight)
	}
	if !cfg.Search.WholeWord {
		t.Error("expected whole word on")
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "config.json", `{}`)
	if _, err := Load(path); err == nil {
		t.Error("expected an error for an unsupported extension")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Editor.ViewHeight != 24 {
		t.Errorf("expected defaults, got view height %d", cfg.Editor.ViewHeight)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeFile(t, "config.toml", `
[editor]
view_height = 40
`)
	t.Setenv("GRAPHIDE_VIEW_HEIGHT", "50")
	t.Setenv("GRAPHIDE_REGEX", "true")
	t.Setenv("GRAPHIDE_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Editor.ViewHeight != 50 {
		t.Errorf("expected env override 50, got %d", cfg.Editor.ViewHeight)
	}
	if !cfg.Search.Regex {
		t.Error("expected regex default on")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected level warn, got %q", cfg.Log.Level)
	}
}

func TestInvalidViewHeightFallsBack(t *testing.T) {
	path := writeFile(t, "config.toml", `
[editor]
view_height = -3
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Editor.ViewHeight != 24 {
		t.Errorf("expected fallback 24, got %d", cfg.Editor.ViewHeight)
	}
}
