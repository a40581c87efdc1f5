// Package main is adminctl, a command line client for exports, dashboards
// and schema management that talks to the database directly.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"adminsuite/internal/app"
	"adminsuite/internal/config"
	appctx "adminsuite/internal/core/context"
	"adminsuite/pkg/logger"
)

var (
	configFile string
	logLevel   string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "adminctl",
	Short: "Admin suite command line tools",
	Long: `adminctl renders exports, prints dashboard aggregates and applies the
database schema without going through the HTTP API.

Configuration comes from --config (or CONFIG_FILE) and the environment.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file (default: $CONFIG_FILE)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Operation timeout")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(userCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withApp loads config, connects and runs fn with a deadline.
func withApp(cmd *cobra.Command, prepare func(*config.Config), fn func(ctx context.Context, a *app.App) error) error {
	if configFile != "" {
		if err := os.Setenv("CONFIG_FILE", configFile); err != nil {
			return err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("database url not configured (set DATABASE_URL)")
	}
	if prepare != nil {
		prepare(cfg)
	}

	log, err := logger.New(logger.Config{Level: logLevel, Development: true, OutputPaths: []string{"stderr"}})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// One trace per run ties its log lines together.
	ctx := appctx.WithTrace(logger.WithLogger(cmd.Context(), log), appctx.NewTrace())
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	a, err := app.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
