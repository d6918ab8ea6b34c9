package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/config"
	"github.com/Veraticus/spent/internal/export"
	"github.com/Veraticus/spent/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export expenses to a file or Google Sheets",
	}

	cmd.AddCommand(exportFileCmd(export.FormatCSV))
	cmd.AddCommand(exportFileCmd(export.FormatJSON))
	cmd.AddCommand(exportSheetsCmd())

	return cmd
}

func exportFileCmd(format export.Format) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(format),
		Short: fmt.Sprintf("Export every expense as %s", format),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString("output")
			return runExportFile(cmd, format, output)
		},
	}

	cmd.Flags().StringP("output", "o", format.Filename(), "File to write, or - for standard output")

	return cmd
}

func runExportFile(cmd *cobra.Command, format export.Format, output string) error {
	t, closeDB, err := openTracker(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB()

	write := func(w io.Writer) error {
		if format == export.FormatJSON {
			return t.ExportJSON(w)
		}
		return t.ExportCSV(w)
	}

	if output == "-" {
		return exportError(write(cmd.OutOrStdout()))
	}

	// Checked before creating the file so an empty export leaves nothing behind.
	if t.Count() == 0 {
		return exportError(common.ErrNothingToExport)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return exportError(err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d expense(s) to %s", t.Count(), output)))
	return err
}

func exportSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "Publish every expense to a Google Sheets spreadsheet",
		Long: `Publish every expense, most recent first, to a Google Sheets spreadsheet.
The target sheet is cleared and rewritten on every export.

Authenticate with a service account (sheets.service_account_path) or with
OAuth2 client credentials and a token from "spent auth sheets".`,
		Args: cobra.NoArgs,
		RunE: runExportSheets,
	}
}

func runExportSheets(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	useSavedToken()
	cfg, err := config.LoadSheetsConfig()
	if err != nil {
		if errors.Is(err, sheets.ErrNoAuth) {
			return common.NewUserError("Google Sheets is not configured; run \"spent auth sheets\" or set sheets.service_account_path", err)
		}
		return fmt.Errorf("invalid sheets configuration: %w", err)
	}

	t, closeDB, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	if t.Count() == 0 {
		return exportError(common.ErrNothingToExport)
	}

	writer, err := sheets.NewWriter(ctx, *cfg, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to connect to Google Sheets: %w", err)
	}

	if err := t.ExportSheets(ctx, writer); err != nil {
		return exportError(err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d expense(s) to sheet %q", t.Count(), cfg.SheetName)))
	return err
}

// useSavedToken fills in the refresh token from the token file written by
// "spent auth sheets" when none is configured.
func useSavedToken() {
	if viper.GetString("sheets.refresh_token") != "" {
		return
	}
	tokenFile := config.ExpandPath(viper.GetString(config.KeySheetsTokenFile))
	if tokenFile == "" {
		return
	}
	token, err := sheets.LoadToken(tokenFile)
	if err != nil || token.RefreshToken == "" {
		return
	}
	slog.Debug("Using saved sheets token", "file", tokenFile)
	viper.Set("sheets.refresh_token", token.RefreshToken)
}

func exportError(err error) error {
	if errors.Is(err, common.ErrNothingToExport) {
		return common.NewUserError("there are no expenses to export", err)
	}
	return err
}
