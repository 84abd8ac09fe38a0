package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, name := range []string{
		"TASKBOARD_BACKEND", "TASKBOARD_DATA_PATH", "TASKBOARD_REMINDER_INTERVAL",
		"TASKBOARD_DESKTOP_NOTIFICATIONS", "TASKBOARD_NOTIFICATION_BUFFER",
		"TASKBOARD_LOG_LEVEL", "TASKBOARD_LOG_FORMAT", "TASKBOARD_LOG_PATH",
	} {
		t.Setenv(name, "")
	}
	return dir
}

func TestRuntimeConfigDefaults(t *testing.T) {
	dir := isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != "sqlite" || cfg.ReminderInterval != 30*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.NotificationBuffer != 64 || cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	want := filepath.Join(dir, "data", "taskboard", "taskboard.db")
	if cfg.DataPath != want {
		t.Fatalf("unexpected data path: got %q want %q", cfg.DataPath, want)
	}
}

func TestLoadReadsDefaultConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config", "taskboard", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := strings.Join([]string{
		`backend = "file"`,
		`reminder_interval = "45s"`,
		`desktop_notifications = true`,
		`log_level = "debug"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != "file" || cfg.ReminderInterval != 45*time.Second || !cfg.DesktopNotifications {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected debug log level, got %q", cfg.LogLevel)
	}
	if want := filepath.Join(dir, "data", "taskboard", "state"); cfg.DataPath != want {
		t.Fatalf("expected file backend default path %q, got %q", want, cfg.DataPath)
	}
}

func TestExplicitConfigFileMustExist(t *testing.T) {
	dir := isolate(t)
	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestMalformedConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("backend = "), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte(`notification_buffer = 8`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("TASKBOARD_BACKEND", "memory")
	t.Setenv("TASKBOARD_REMINDER_INTERVAL", "10")
	t.Setenv("TASKBOARD_DESKTOP_NOTIFICATIONS", "yes")
	t.Setenv("TASKBOARD_NOTIFICATION_BUFFER", "128")
	t.Setenv("TASKBOARD_LOG_FORMAT", "json")
	t.Setenv("TASKBOARD_LOG_PATH", filepath.Join(dir, "taskboard.log"))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != "memory" || cfg.DataPath != "" {
		t.Fatalf("unexpected backend config: %+v", cfg)
	}
	if cfg.ReminderInterval != 10*time.Second || !cfg.DesktopNotifications {
		t.Fatalf("unexpected env overrides: %+v", cfg)
	}
	if cfg.NotificationBuffer != 128 || cfg.LogFormat != "json" {
		t.Fatalf("env should win over the file: %+v", cfg)
	}
	if cfg.LogPath != filepath.Join(dir, "taskboard.log") {
		t.Fatalf("unexpected log path: %q", cfg.LogPath)
	}
}

func TestFinalizeRejectsUnknownBackend(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.Backend = "postgres"
	if err := cfg.Finalize(); err == nil {
		t.Fatal("expected unknown backend error")
	}
}

func TestInvalidEnvValuesAreIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("TASKBOARD_NOTIFICATION_BUFFER", "many")
	t.Setenv("TASKBOARD_REMINDER_INTERVAL", "-5s")
	t.Setenv("TASKBOARD_DESKTOP_NOTIFICATIONS", "maybe")
	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.NotificationBuffer != 64 || cfg.ReminderInterval != 30*time.Second || cfg.DesktopNotifications {
		t.Fatalf("invalid env values leaked: %+v", cfg)
	}
}
