package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"metadata-backoffice/internal/backoffice/config"
	"metadata-backoffice/internal/di"
	"metadata-backoffice/internal/shared/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "metadata-backoffice",
	Short: "Admin backend for metadata, catalogs and mock endpoints",
	Long: `metadata-backoffice serves the admin API that manages configuration
metadata per country and device, the country and device catalogs, and
JSON mock endpoints. Running it without a subcommand starts the server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
}

// bootstrap loads configuration, builds the logger and opens storage.
// The returned container must be closed by the caller.
func bootstrap(ctx context.Context) (*config.Config, logger.Logger, *di.Container, error) {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not load %s: %v\n", envFile, err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.New(cfg.Logging.Backend, cfg.Logging.Level, cfg.Logging.Format)
	appLogger.Info("Application configuration loaded", "environment", cfg.Environment, "storage", cfg.Storage.Backend)

	container := di.NewContainer(cfg, appLogger)

	storageCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := container.InitializeStorage(storageCtx); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return cfg, appLogger, container, nil
}
