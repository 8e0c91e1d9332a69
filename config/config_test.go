package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.NotContains(t, cfg.Storage.DataDir, "~")
	assert.Equal(t, filepath.Join(cfg.Storage.DataDir, "checkups.db"), cfg.Storage.DatabaseRef)
	assert.False(t, cfg.Notifications.Enabled)
	assert.Equal(t, "0 9 * * *", cfg.Notifications.Schedule)

	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  backend: sqlite
notifications:
  enabled: true
  phone: "+14155552671"
  schedule: "30 8 * * *"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.True(t, cfg.Notifications.Enabled)
	assert.Equal(t, "+14155552671", cfg.Notifications.Phone)
	assert.Equal(t, "30 8 * * *", cfg.Notifications.Schedule)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CHECKUP_STORAGE_BACKEND", "sqlite")
	t.Setenv("CHECKUP_DATA_DIR", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
}

func TestValidate(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		cfg := &Config{Storage: StorageConfig{Backend: "redis"}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("postgres needs a DSN", func(t *testing.T) {
		cfg := &Config{Storage: StorageConfig{Backend: BackendPostgres}}
		assert.Error(t, cfg.Validate())

		cfg.Storage.DatabaseURL = "postgres://localhost/checkups"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("notifications need a phone", func(t *testing.T) {
		cfg := &Config{
			Storage:       StorageConfig{Backend: BackendFile},
			Notifications: NotificationConfig{Enabled: true},
		}
		assert.Error(t, cfg.Validate())

		cfg.Notifications.Phone = "+14155552671"
		assert.NoError(t, cfg.Validate())
	})
}
