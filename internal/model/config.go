package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Storage backend names.
const (
	BackendSQLite  = "sqlite"
	BackendKeyring = "keyring"
)

// StorageConfig selects and locates the key-value backend.
type StorageConfig struct {
	// Backend is "sqlite" or "keyring".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Path is the SQLite database file. ":memory:" keeps state in memory.
	Path string `mapstructure:"path" yaml:"path"`

	// KeyringDir is where the file keyring backend stores its items.
	KeyringDir string `mapstructure:"keyring_dir" yaml:"keyring_dir"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// NotificationsConfig holds feed behaviour toggles.
type NotificationsConfig struct {
	SeedDemo bool `mapstructure:"seed_demo" yaml:"seed_demo"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	ToastSeconds int `mapstructure:"toast_seconds" yaml:"toast_seconds"`
}

// AvatarConfig bounds the size of stored avatar images.
type AvatarConfig struct {
	MaxDimension int `mapstructure:"max_dimension" yaml:"max_dimension"`
	Quality      int `mapstructure:"quality" yaml:"quality"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage       StorageConfig       `mapstructure:"storage" yaml:"storage"`
	Log           LogConfig           `mapstructure:"log" yaml:"log"`
	Notifications NotificationsConfig `mapstructure:"notifications" yaml:"notifications"`
	Display       DisplayConfig       `mapstructure:"display" yaml:"display"`
	Avatar        AvatarConfig        `mapstructure:"avatar" yaml:"avatar"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/dashboard/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configHome(), "dashboard", "config.yaml")
}

func configHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config")
}

func dataHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "dashboard")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{
			Backend:    BackendSQLite,
			Path:       filepath.Join(dataHome(), "dashboard.db"),
			KeyringDir: filepath.Join(configHome(), "dashboard", "keyring"),
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dataHome(), "dashboard.log"),
		},
		Notifications: NotificationsConfig{SeedDemo: true},
		Display:       DisplayConfig{ToastSeconds: 3},
		Avatar:        AvatarConfig{MaxDimension: 256, Quality: 85},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
// Environment variables prefixed DASHBOARD_ override file values
// (e.g. DASHBOARD_STORAGE_BACKEND=keyring).
func LoadConfig(path string) (*AppConfig, error) {
	def := defaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("dashboard")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("storage.backend", def.Storage.Backend)
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("storage.keyring_dir", def.Storage.KeyringDir)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("notifications.seed_demo", def.Notifications.SeedDemo)
	v.SetDefault("display.toast_seconds", def.Display.ToastSeconds)
	v.SetDefault("avatar.max_dimension", def.Avatar.MaxDimension)
	v.SetDefault("avatar.quality", def.Avatar.Quality)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	cfg.Storage.Path = ExpandHome(cfg.Storage.Path)
	cfg.Storage.KeyringDir = ExpandHome(cfg.Storage.KeyringDir)
	cfg.Log.File = ExpandHome(cfg.Log.File)

	return cfg, nil
}

// Validate checks values that would otherwise fail later at startup.
func (c *AppConfig) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendKeyring:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Display.ToastSeconds <= 0 {
		c.Display.ToastSeconds = 3
	}
	if c.Avatar.MaxDimension <= 0 {
		c.Avatar.MaxDimension = 256
	}
	if c.Avatar.Quality <= 0 || c.Avatar.Quality > 100 {
		c.Avatar.Quality = 85
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("log", cfg.Log)
	v.Set("notifications", cfg.Notifications)
	v.Set("display", cfg.Display)
	v.Set("avatar", cfg.Avatar)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
// Other paths are returned unchanged.
func ExpandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
