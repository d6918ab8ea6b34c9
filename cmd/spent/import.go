package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/config"
	"github.com/Veraticus/spent/internal/importer"
	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/tracker"
	"github.com/Veraticus/spent/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	previewRows       = 5
	maxRejectionLines = 10
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import expenses from bank exports",
	}

	cmd.AddCommand(importCSVCmd())
	cmd.AddCommand(importOFXCmd())

	return cmd
}

func importCSVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csv <file>",
		Short: "Import expenses from a delimited file",
		Long: `Import expenses from a comma-separated file.

The first non-blank line is the header. Columns for the date, description and
amount are guessed from the header; override them with the --*-col flags
(1-based) or choose them with --interactive. Rows that cannot be read are
skipped and reported, and the rest are imported.`,
		Example: `  spent import csv statement.csv
  spent import csv statement.csv --date-col 1 --description-col 3 --amount-col 4
  spent import csv statement.csv --interactive --category food`,
		Args: cobra.ExactArgs(1),
		RunE: runImportCSV,
	}

	cmd.Flags().Int("date-col", 0, "Column holding the date (1-based)")
	cmd.Flags().Int("description-col", 0, "Column holding the description (1-based)")
	cmd.Flags().Int("amount-col", 0, "Column holding the amount (1-based)")
	cmd.Flags().BoolP("interactive", "i", false, "Choose the columns in an interactive picker")
	addImportFlags(cmd)

	return cmd
}

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ofx <file>",
		Short: "Import expenses from an OFX or QFX statement",
		Long: `Import the outgoing transactions of an OFX or QFX bank statement.
Incoming transactions are not expenses and are left out.`,
		Args: cobra.ExactArgs(1),
		RunE: runImportOFX,
	}

	addImportFlags(cmd)

	return cmd
}

func addImportFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("category", "c", "", "Category for every imported expense (default from import.default_category)")
	cmd.Flags().BoolP("yes", "y", false, "Import without asking for confirmation")
}

func runImportCSV(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	t, closeDB, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := t.BeginImport(string(content)); err != nil {
		return importError(err)
	}
	defer t.CancelImport()

	mapping, err := chooseMapping(cmd, t)
	if err != nil {
		return err
	}

	return commitImport(cmd, t, mapping)
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer func() { _ = f.Close() }()

	t, closeDB, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := t.BeginOFXImport(f); err != nil {
		return importError(err)
	}
	defer t.CancelImport()

	return commitImport(cmd, t, t.SuggestMapping())
}

// chooseMapping combines the suggested mapping with column flags and, when
// asked, the interactive picker.
func chooseMapping(cmd *cobra.Command, t *tracker.Tracker) (importer.Mapping, error) {
	m := t.SuggestMapping()
	flags := cmd.Flags()

	for _, col := range []struct {
		field *int
		flag  string
	}{
		{&m.Date, "date-col"},
		{&m.Description, "description-col"},
		{&m.Amount, "amount-col"},
	} {
		if !flags.Changed(col.flag) {
			continue
		}
		n, _ := flags.GetInt(col.flag)
		if n < 1 {
			return m, common.NewUserError(fmt.Sprintf("--%s must be 1 or greater", col.flag), importer.ErrColumnOutOfRange)
		}
		*col.field = n - 1
	}

	if interactive, _ := flags.GetBool("interactive"); interactive {
		p := t.Import()
		picked, err := tui.PickMapping(cmd.Context(), tui.PickerConfig{
			Input:  cmd.InOrStdin(),
			Output: cmd.OutOrStdout(),
		}, p.Headers(), p.Preview(previewRows), m)
		if err != nil {
			if errors.Is(err, tui.ErrPickerCancelled) {
				return m, common.NewUserError("import cancelled, nothing was imported", err)
			}
			return m, err
		}
		return picked, nil
	}

	if !m.Complete() {
		return m, common.NewUserError(
			fmt.Sprintf("could not tell which columns hold the date, description and amount (headers: %s); use --date-col, --description-col and --amount-col or --interactive",
				strings.Join(t.Import().Headers(), ", ")),
			importer.ErrColumnNotSelected)
	}
	return m, nil
}

func commitImport(cmd *cobra.Command, t *tracker.Tracker, m importer.Mapping) error {
	out := cmd.OutOrStdout()
	p := t.Import()

	category := config.DefaultImportCategory(viper.GetViper())
	if raw, _ := cmd.Flags().GetString("category"); raw != "" {
		c, err := parseCategoryFlag(raw)
		if err != nil {
			return err
		}
		category = c
	}

	if err := writeLines(out, renderImportPreview(p, m, category)...); err != nil {
		return err
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		ok, err := confirm(cmd, fmt.Sprintf("Import %d row(s)?", p.Rows()))
		if err != nil {
			return err
		}
		if !ok {
			_, err := fmt.Fprintln(out, cli.FormatInfo("Import cancelled, nothing was imported"))
			return err
		}
	}

	progress, finish := cli.ImportProgress(cmd.ErrOrStderr(), p.Rows())
	res, err := t.ConfirmImport(cmd.Context(), tracker.ImportRequest{
		Mapping:  m,
		Category: category,
		Progress: progress,
	})
	finish()
	if err != nil {
		return importError(err)
	}

	slog.Debug("Import finished", "imported", res.Imported, "skipped", res.Skipped)
	return writeLines(out, renderImportResult(res)...)
}

func renderImportPreview(p *importer.Pipeline, m importer.Mapping, category model.Category) []string {
	headers := p.Headers()
	lines := []string{
		cli.FormatTitle("Import preview"),
		fmt.Sprintf("%d row(s) staged, %d dropped while reading", p.Rows(), p.Dropped()),
		fmt.Sprintf("Date: %s  Description: %s  Amount: %s  Category: %s",
			columnLabel(headers, m.Date), columnLabel(headers, m.Description), columnLabel(headers, m.Amount), category.Label()),
	}
	if preview := p.Preview(previewRows); len(preview) > 0 {
		lines = append(lines, "", renderTable(headers, preview))
	}
	return lines
}

func columnLabel(headers []string, i int) string {
	if i < 0 || i >= len(headers) {
		return "(none)"
	}
	return fmt.Sprintf("%q (column %d)", headers[i], i+1)
}

func renderImportResult(res importer.Result) []string {
	lines := []string{cli.FormatSuccess(fmt.Sprintf("Imported %d expense(s)", res.Imported))}
	if res.Skipped == 0 {
		return lines
	}

	lines = append(lines, cli.FormatWarning(fmt.Sprintf("Skipped %d row(s)", res.Skipped)))
	for i, rej := range res.Rejections {
		if i == maxRejectionLines {
			lines = append(lines, cli.SubtleStyle.Render(fmt.Sprintf("  ... and %d more", len(res.Rejections)-i)))
			break
		}
		lines = append(lines, cli.SubtleStyle.Render(fmt.Sprintf("  row %d: %s %s", rej.Row, rej.Reason, rej.Detail)))
	}
	return lines
}

// importError turns batch-fatal import errors into messages for the terminal.
func importError(err error) error {
	switch {
	case errors.Is(err, importer.ErrEmptyInput):
		return common.NewUserError("the file has no rows to import", err)
	case errors.Is(err, importer.ErrNoValidRows):
		return common.NewUserError("no rows in the file could be read", err)
	case errors.Is(err, importer.ErrColumnNotSelected), errors.Is(err, importer.ErrColumnOutOfRange):
		return common.NewUserError("the chosen columns do not match the file", err)
	default:
		return fmt.Errorf("import failed: %w", err)
	}
}
