package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Storage backend names accepted in configuration.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	Storage       StorageConfig      `koanf:"storage"`
	Notifications NotificationConfig `koanf:"notifications"`
}

type StorageConfig struct {
	Backend     string `koanf:"backend"`      // file, sqlite or postgres
	DataDir     string `koanf:"data_dir"`     // file backend: snapshot directory
	DatabaseRef string `koanf:"database_ref"` // sqlite: db file path (default: <data_dir>/checkups.db)
	DatabaseURL string `koanf:"database_url"` // postgres: DSN; falls back to the DB_URL env var
}

type NotificationConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Phone    string `koanf:"phone"`    // destination in E.164 form for WhatsApp delivery
	Schedule string `koanf:"schedule"` // cron spec for the reminder sweep
}

// Load reads configuration from defaults, then the YAML file at
// configPath (if it exists), then CHECKUP_-prefixed environment
// variables. Twilio credentials are intentionally not part of this
// file; the notifier reads TWILIO_* from the environment directly.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider("CHECKUP_", ".", func(s string) string {
		return s
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// Common overrides that don't need a config file
	if dir := os.Getenv("CHECKUP_DATA_DIR"); dir != "" {
		k.Set("storage.data_dir", dir)
	}
	if backend := os.Getenv("CHECKUP_STORAGE_BACKEND"); backend != "" {
		k.Set("storage.backend", backend)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Storage.DataDir = expandPath(cfg.Storage.DataDir)
	if cfg.Storage.DatabaseRef == "" {
		cfg.Storage.DatabaseRef = filepath.Join(cfg.Storage.DataDir, "checkups.db")
	} else {
		cfg.Storage.DatabaseRef = expandPath(cfg.Storage.DatabaseRef)
	}
	if cfg.Storage.DatabaseURL == "" {
		cfg.Storage.DatabaseURL = os.Getenv("DB_URL")
	}

	return &cfg, nil
}

// Validate checks the parts of the config that would otherwise fail
// deep inside a backend or the scheduler.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	case BackendPostgres:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("postgres backend requires storage.database_url or DB_URL")
		}
	default:
		return fmt.Errorf("unknown storage backend: %s (supported: %s, %s, %s)",
			c.Storage.Backend, BackendFile, BackendSQLite, BackendPostgres)
	}

	if c.Notifications.Enabled && c.Notifications.Phone == "" {
		return fmt.Errorf("notifications.phone is required when notifications are enabled")
	}
	return nil
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
