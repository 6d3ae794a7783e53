package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigHasNoTimeout(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Timeout() != nil {
		t.Fatalf("expected nil timeout by default, got %v", *cfg.Timeout())
	}
	if cfg.PollWindow().Milliseconds() != 10 {
		t.Fatalf("PollWindow = %v, want 10ms", cfg.PollWindow())
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EXPECTPTY_CONFIG_DIR", dir)
	t.Setenv("EXPECTPTY_TIMEOUT_MS", "5000")
	t.Setenv("EXPECTPTY_ESCAPE_BYTE", "27")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Timeout() == nil || *cfg.Timeout() != 5000000000 {
		t.Fatalf("Timeout = %v, want 5s", cfg.Timeout())
	}
	if cfg.EscapeByte != 27 {
		t.Fatalf("EscapeByte = %d, want 27", cfg.EscapeByte)
	}
}

func TestEnvOverridesFileValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EXPECTPTY_CONFIG_DIR", dir)

	cfg := DefaultConfig()
	cfg.PollWindowMS = 99
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.json")); err != nil {
		t.Fatalf("expected config file to exist: %v", err)
	}

	t.Setenv("EXPECTPTY_POLL_WINDOW_MS", "7")
	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.PollWindowMS != 7 {
		t.Fatalf("PollWindowMS = %d, want env override 7", loaded.PollWindowMS)
	}
}
