package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Navaneeth-Nair/Neuromate/internal/config"
	"github.com/Navaneeth-Nair/Neuromate/internal/persistence/postgres"
)

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	for _, direction := range []postgres.Direction{postgres.Up, postgres.Down} {
		cmd.AddCommand(&cobra.Command{
			Use:   string(direction),
			Short: fmt.Sprintf("Run every %s migration", direction),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if cfg.PostgresURL == "" {
					return errors.New("--database or POSTGRES_URL is required")
				}
				if err := postgres.Migrate(cfg.PostgresURL, direction); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "migrations %s: done\n", direction)
				return nil
			},
		})
	}
	return cmd
}
