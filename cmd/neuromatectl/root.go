package main

import (
	"github.com/spf13/cobra"

	"github.com/Navaneeth-Nair/Neuromate/internal/config"
)

func newRootCmd() *cobra.Command {
	cfg := config.Load()

	cmd := &cobra.Command{
		Use:           "neuromatectl",
		Short:         "Operate a NeuroMate deployment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&cfg.PostgresURL, "database", cfg.PostgresURL, "Postgres connection URL (defaults to POSTGRES_URL)")

	cmd.AddCommand(
		newMigrateCmd(&cfg),
		newCalendarCmd(&cfg),
		newTokenCmd(&cfg),
	)
	return cmd
}
