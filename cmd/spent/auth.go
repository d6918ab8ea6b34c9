package main

import (
	"fmt"
	"os"

	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/config"
	"github.com/Veraticus/spent/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with external services",
	}

	cmd.AddCommand(authSheetsCmd())

	return cmd
}

func authSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Authorize access to Google Sheets",
		Long: `Authorize spent to write to Google Sheets with OAuth2.

This command will:
1. Start a local callback server
2. Print a Google consent URL to open in your browser
3. Save the resulting token for "spent export sheets"

Requires sheets.client_id and sheets.client_secret in the config file, or
GOOGLE_SHEETS_CLIENT_ID and GOOGLE_SHEETS_CLIENT_SECRET.`,
		Args: cobra.NoArgs,
		RunE: runAuthSheets,
	}

	cmd.Flags().String("listen", "localhost:8080", "Address for the OAuth2 callback server")

	return cmd
}

func runAuthSheets(cmd *cobra.Command, _ []string) error {
	clientID := firstNonEmpty(viper.GetString("sheets.client_id"), os.Getenv("GOOGLE_SHEETS_CLIENT_ID"))
	clientSecret := firstNonEmpty(viper.GetString("sheets.client_secret"), os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET"))
	if clientID == "" || clientSecret == "" {
		return common.NewUserError("sheets.client_id and sheets.client_secret must be configured", common.ErrMissingConfig)
	}

	listen, _ := cmd.Flags().GetString("listen")
	tokenFile := config.ExpandPath(viper.GetString(config.KeySheetsTokenFile))

	token, err := sheets.GetOrCreateToken(cmd.Context(), sheets.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    tokenFile,
		ListenAddr:   listen,
	})
	if err != nil {
		return fmt.Errorf("google sheets authentication failed: %w", err)
	}
	if token.RefreshToken == "" {
		return common.NewUserError("Google did not return a refresh token; revoke access for this app and try again", common.ErrMissingConfig)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Google Sheets authorized; token stored in "+tokenFile))
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
