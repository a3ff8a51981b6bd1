package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.SettingsBackend != BackendFile || cfg.SettingsPath != "data/settings.yaml" {
		t.Errorf("unexpected backend defaults %+v", cfg)
	}
	if cfg.PersistTimeout != 3*time.Second || cfg.ReportsDir != "reports" || cfg.LogLevel != "info" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.ValidateBot(); err == nil {
		t.Error("Expected ValidateBot to fail without a token")
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "TELEGRAM_TOKEN=abc\nOWNER_CHAT_ID=42\nSETTINGS_BACKEND=redis\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("TELEGRAM_TOKEN")
		os.Unsetenv("OWNER_CHAT_ID")
		os.Unsetenv("SETTINGS_BACKEND")
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OwnerChatID != 42 || cfg.SettingsBackend != BackendRedis {
		t.Errorf("unexpected config %+v", cfg)
	}
	if err := cfg.ValidateBot(); err != nil {
		t.Errorf("ValidateBot failed: %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("SETTINGS_BACKEND", "sqlite")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("Expected error for unknown backend")
	}

	cfg := Config{SettingsBackend: BackendPostgres, PersistTimeout: time.Second}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for postgres without credentials")
	}
}
