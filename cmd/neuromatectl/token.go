package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Navaneeth-Nair/Neuromate/internal/auth"
	"github.com/Navaneeth-Nair/Neuromate/internal/config"
)

func newTokenCmd(cfg *config.Config) *cobra.Command {
	var userID string
	ttl := cfg.JWTTTL

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for a user (development only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if userID == "" {
				return errors.New("--user is required")
			}
			issuer := auth.NewIssuer(auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer, TTL: ttl})
			token, expiresAt, err := issuer.Issue(userID, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id to embed as the token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", ttl, "token lifetime")
	return cmd
}
