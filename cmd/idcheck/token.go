package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	jwttoken "idcheck/internal/jwt_token"
	"idcheck/internal/platform/config"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an API bearer token",
	Long: `Mint an HS256 bearer token for the idcheck API, signed with
IDCHECK_JWT_SIGNING_KEY. The subject names the calling system.`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Token subject (calling system name)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("subject")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.Server.AuthEnabled() {
		return errors.New("IDCHECK_JWT_SIGNING_KEY is not set")
	}
	token, err := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, jwttoken.Issuer).GenerateAccessToken(tokenSubject, tokenTTL)
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
