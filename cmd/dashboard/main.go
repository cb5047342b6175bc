package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/nhle/dashboard/internal/app"
	"github.com/nhle/dashboard/internal/logging"
	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/state"
	"github.com/nhle/dashboard/internal/store"
	"github.com/nhle/dashboard/internal/ui/profileform"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "dashboard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := pflag.StringP("config", "c", model.DefaultConfigPath(), "path to the config file")
	writeConfig := pflag.Bool("write-config", false, "write the effective config to --config and exit")
	logLevel := pflag.String("log-level", "", "override log.level (debug, info, warn, error)")
	pflag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	if *writeConfig {
		if err := model.SaveConfig(*configPath, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", *configPath)
		return nil
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	kv, err := openStore(cfg.Storage)
	if err != nil {
		return err
	}
	defer kv.Close()

	logger.Info("starting",
		zap.String("config", *configPath),
		zap.String("backend", cfg.Storage.Backend),
	)

	ctx := context.Background()
	d := state.New(ctx, store.NewAdapter(kv, logger),
		state.WithLogger(logger),
		state.WithDemoNotifications(cfg.Notifications.SeedDemo),
	)

	m := app.New(d, app.Options{
		ToastDuration: time.Duration(cfg.Display.ToastSeconds) * time.Second,
		Avatar: profileform.AvatarOptions{
			MaxDimension: cfg.Avatar.MaxDimension,
			Quality:      cfg.Avatar.Quality,
		},
		Logger: logger,
	})

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		logger.Error("program exited", zap.Error(err))
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

// openStore opens the key-value backend selected in the config.
func openStore(cfg model.StorageConfig) (store.Store, error) {
	switch cfg.Backend {
	case model.BackendKeyring:
		ring, err := store.OpenKeyring(cfg.KeyringDir)
		if err != nil {
			return nil, err
		}
		return store.NewKeyringStore(ring), nil
	default:
		return store.NewSQLiteStore(cfg.Path)
	}
}
