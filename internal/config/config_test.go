package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.Backend.Path != "/sbin/apk" {
		t.Errorf("expected default backend path /sbin/apk, got %s", cfg.Backend.Path)
	}
	if !cfg.Backend.Purge {
		t.Error("expected Purge to be true by default")
	}

	if !cfg.Output.Color {
		t.Error("expected Color to be true by default")
	}
	if !cfg.Output.Unicode {
		t.Error("expected Unicode to be true by default")
	}
	if cfg.Output.Verbose {
		t.Error("expected Verbose to be false by default")
	}

	if cfg.General.AutoConfirm {
		t.Error("expected AutoConfirm to be false by default")
	}
	if cfg.General.DryRun {
		t.Error("expected DryRun to be false by default")
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nonexistent.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error for missing file: %v", err)
	}
	if cfg.Backend.Path != "/sbin/apk" {
		t.Error("missing file should yield defaults")
	}
}

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[general]
auto_confirm = true

[backend]
path = "/usr/local/bin/apk"
purge = false

[output]
color = false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if !cfg.General.AutoConfirm {
		t.Error("expected AutoConfirm true from file")
	}
	if cfg.Backend.Path != "/usr/local/bin/apk" {
		t.Errorf("expected backend path from file, got %s", cfg.Backend.Path)
	}
	if cfg.Backend.Purge {
		t.Error("expected Purge false from file")
	}
	if cfg.Output.Color {
		t.Error("expected Color false from file")
	}
	// Unset sections keep defaults
	if !cfg.Output.Unicode {
		t.Error("expected Unicode to keep its default")
	}
}

func TestLoadFromInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() should fail on malformed TOML")
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	path := filepath.Join(tmpDir, "config.toml")
	cfg := Default()
	cfg.Backend.Path = "/opt/apk"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if loaded.Backend.Path != "/opt/apk" {
		t.Errorf("round trip lost backend path, got %s", loaded.Backend.Path)
	}
}

func TestShouldUseColor(t *testing.T) {
	cfg := Default()

	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")
	if !cfg.ShouldUseColor() {
		t.Error("expected color when NO_COLOR unset and Color=true")
	}

	t.Setenv("NO_COLOR", "1")
	if cfg.ShouldUseColor() {
		t.Error("NO_COLOR should disable color")
	}
}
