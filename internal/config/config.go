// Package config resolves runtime settings from defaults, a TOML file and
// TASKBOARD_* environment variables. CLI flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultBackend            = "sqlite"
	DefaultReminderInterval   = 30 * time.Second
	DefaultNotificationBuffer = 64
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
)

type RuntimeConfig struct {
	Backend              string        `toml:"backend"`
	DataPath             string        `toml:"data_path"`
	ReminderInterval     time.Duration `toml:"reminder_interval"`
	DesktopNotifications bool          `toml:"desktop_notifications"`
	NotificationBuffer   int           `toml:"notification_buffer"`
	LogLevel             string        `toml:"log_level"`
	LogFormat            string        `toml:"log_format"`
	LogPath              string        `toml:"log_path"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Backend:              DefaultBackend,
		DataPath:             DefaultDataPath(DefaultBackend),
		ReminderInterval:     DefaultReminderInterval,
		DesktopNotifications: false,
		NotificationBuffer:   DefaultNotificationBuffer,
		LogLevel:             DefaultLogLevel,
		LogFormat:            DefaultLogFormat,
	}
}

// DefaultDataPath is where a backend keeps its data when no path is given.
// The file backend uses a directory, sqlite a database file.
func DefaultDataPath(backend string) string {
	dir := filepath.Join(dataHome(), "taskboard")
	switch backend {
	case "file":
		return filepath.Join(dir, "state")
	case "memory":
		return ""
	default:
		return filepath.Join(dir, "taskboard.db")
	}
}

// DefaultConfigFile returns $XDG_CONFIG_HOME/taskboard/config.toml, falling
// back to the OS user config directory.
func DefaultConfigFile() string {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "taskboard", "config.toml")
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "taskboard", "config.toml")
}

// Load layers defaults, the config file and the environment. An explicit
// path must exist; the default file is optional.
func Load(path string) (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultConfigFile()
	}
	if path != "" {
		if err := loadFile(&cfg, expandPath(path), explicit); err != nil {
			return RuntimeConfig{}, err
		}
	}

	cfg = RuntimeConfigFromEnv(cfg)
	if err := cfg.Finalize(); err != nil {
		return RuntimeConfig{}, err
	}
	return cfg, nil
}

func loadFile(cfg *RuntimeConfig, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("config file %s: %w", path, err)
	}
	backend := cfg.Backend
	dataPath := cfg.DataPath
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	// A backend switch without a path moves to that backend's default.
	if cfg.Backend != backend && cfg.DataPath == dataPath {
		cfg.DataPath = DefaultDataPath(cfg.Backend)
	}
	return nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TASKBOARD_BACKEND"); ok {
		if cfg.DataPath == DefaultDataPath(cfg.Backend) {
			cfg.DataPath = DefaultDataPath(v)
		}
		cfg.Backend = v
	}
	if v, ok := getEnvString("TASKBOARD_DATA_PATH"); ok {
		cfg.DataPath = v
	}
	if v, ok := getEnvDuration("TASKBOARD_REMINDER_INTERVAL"); ok && v > 0 {
		cfg.ReminderInterval = v
	}
	if v, ok := getEnvBool("TASKBOARD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("TASKBOARD_NOTIFICATION_BUFFER"); ok && v > 0 {
		cfg.NotificationBuffer = v
	}
	if v, ok := getEnvString("TASKBOARD_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString("TASKBOARD_LOG_FORMAT"); ok {
		cfg.LogFormat = v
	}
	if v, ok := getEnvString("TASKBOARD_LOG_PATH"); ok {
		cfg.LogPath = v
	}
	return cfg
}

// Finalize normalizes values and rejects ones nothing downstream can use.
func (c *RuntimeConfig) Finalize() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case "sqlite", "file", "memory":
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	c.DataPath = expandPath(c.DataPath)
	c.LogPath = expandPath(c.LogPath)
	if c.ReminderInterval <= 0 {
		c.ReminderInterval = DefaultReminderInterval
	}
	if c.NotificationBuffer <= 0 {
		c.NotificationBuffer = DefaultNotificationBuffer
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = DefaultLogLevel
	}
	if strings.TrimSpace(c.LogFormat) == "" {
		c.LogFormat = DefaultLogFormat
	}
	return nil
}

func dataHome() string {
	if xdg := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdg != "" {
		return xdg
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded[1:], "/"))
	}
	return expanded
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// getEnvDuration accepts Go durations ("45s") or a bare number of seconds.
func getEnvDuration(name string) (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d, true
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, true
	}
	return 0, false
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
