package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	def := defaultAppConfig()
	assert.Equal(t, def.Storage.Backend, cfg.Storage.Backend)
	assert.Equal(t, def.Storage.Path, cfg.Storage.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Notifications.SeedDemo)
	assert.Equal(t, 3, cfg.Display.ToastSeconds)
	assert.Equal(t, 256, cfg.Avatar.MaxDimension)
	assert.Equal(t, 85, cfg.Avatar.Quality)
}

func TestLoadConfigReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  backend: keyring
  keyring_dir: /tmp/ring
log:
  level: debug
notifications:
  seed_demo: false
display:
  toast_seconds: 5
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, BackendKeyring, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/ring", cfg.Storage.KeyringDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Notifications.SeedDemo)
	assert.Equal(t, 5, cfg.Display.ToastSeconds)
	assert.Equal(t, 256, cfg.Avatar.MaxDimension, "unset keys keep defaults")
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("DASHBOARD_STORAGE_PATH", "/tmp/env.db")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.Storage.Path)
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: redis\n"), 0o600))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, `unknown storage backend "redis"`)
}

func TestValidateFixesNonPositiveValues(t *testing.T) {
	cfg := defaultAppConfig()
	cfg.Display.ToastSeconds = 0
	cfg.Avatar.MaxDimension = -1
	cfg.Avatar.Quality = 150

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 3, cfg.Display.ToastSeconds)
	assert.Equal(t, 256, cfg.Avatar.MaxDimension)
	assert.Equal(t, 85, cfg.Avatar.Quality)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := defaultAppConfig()
	cfg.Storage.Path = "/tmp/state.db"
	cfg.Log.Level = "warn"
	cfg.Display.ToastSeconds = 7
	require.NoError(t, SaveConfig(path, cfg))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/state.db", got.Storage.Path)
	assert.Equal(t, "warn", got.Log.Level)
	assert.Equal(t, 7, got.Display.ToastSeconds)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "x.db"), ExpandHome("~/x.db"))
	assert.Equal(t, "/abs/x.db", ExpandHome("/abs/x.db"))
}
