package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-intake/internal/config"
	"github.com/jonathan/resume-intake/internal/server"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for an API client",
	Long:  "Sign a bearer token with the configured JWT secret so a client service can call the API.",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Client identity recorded in the token (required)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("subject")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	tokens := server.NewTokenService(appConfig.Auth, nil)
	if tokens == nil {
		return fmt.Errorf("a JWT secret is required (set AUTH_JWT_SECRET or %s_AUTH_JWT_SECRET)", config.EnvPrefix)
	}

	token, err := tokens.GenerateToken(tokenSubject, tokenTTL)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
