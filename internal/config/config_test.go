package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
	if cfg.Translator.Form != "mask" {
		t.Fatalf("expected default translator form \"mask\", got %q", cfg.Translator.Form)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("expected default log level \"info\", got %q", cfg.Log.Level)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.RNG.Seed = 42
	cfg.Translator.Form = "legacy"

	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.RNG.Seed != 42 {
		t.Fatalf("expected seed 42, got %d", loaded.RNG.Seed)
	}
	if loaded.Translator.Form != "legacy" {
		t.Fatalf("expected form \"legacy\", got %q", loaded.Translator.Form)
	}
}

func TestValidateRejectsUnknownTranslatorForm(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Translator.Form = "bogus"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown translator form")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(": not valid yaml: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error for malformed YAML")
	}
}
