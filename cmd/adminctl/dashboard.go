package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"adminsuite/internal/app"
	"adminsuite/internal/config"
	"adminsuite/internal/domain/analytics"
	"adminsuite/internal/infrastructure/storage/postgres"
)

var dashboardPeriod string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the dashboard aggregates as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		period, ok := analytics.ParsePeriod(dashboardPeriod)
		if !ok {
			return fmt.Errorf("unknown period %q (want 7d, 30d, 90d or 1y)", dashboardPeriod)
		}
		return withApp(cmd, nil, func(ctx context.Context, a *app.App) error {
			d, err := a.Analytics.Dashboard(ctx, period)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), d)
		})
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print record counts behind the reports page",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, nil, func(ctx context.Context, a *app.App) error {
			sum, err := a.Reports.Summary(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), sum)
		})
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if printSchema {
			_, err := fmt.Fprint(cmd.OutOrStdout(), postgres.Schema())
			return err
		}
		forceMigrate := func(cfg *config.Config) { cfg.Database.AutoMigrate = true }
		return withApp(cmd, forceMigrate, func(ctx context.Context, a *app.App) error {
			fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
			return printJSON(cmd.OutOrStdout(), a.Pool.Stats())
		})
	},
}

var printSchema bool

func init() {
	dashboardCmd.Flags().StringVarP(&dashboardPeriod, "period", "p", string(analytics.DefaultPeriod), "7d, 30d, 90d or 1y")
	migrateCmd.Flags().BoolVar(&printSchema, "print", false, "Print the schema instead of applying it")
}
