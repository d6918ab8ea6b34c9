package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/config"
	"github.com/Veraticus/spent/internal/ledger"
	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/storage"
	"github.com/Veraticus/spent/internal/tracker"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// openTracker opens the configured database, runs migrations and loads the
// tracker. The returned close function releases the database.
func openTracker(ctx context.Context) (*tracker.Tracker, func(), error) {
	dbPath := config.DatabasePath(viper.GetViper())

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, nil, err
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			slog.Warn("Failed to close database", "error", err)
		}
	}

	if err := store.Migrate(ctx); err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	t, err := tracker.Open(ctx, store)
	if err != nil {
		closeStore()
		return nil, nil, err
	}

	slog.Debug("Opened expense database", "path", dbPath, "expenses", t.Count())
	return t, closeStore, nil
}

// parseAmountFlag reads a strictly positive decimal amount.
func parseAmountFlag(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !d.IsPositive() {
		return decimal.Zero, common.NewUserError(fmt.Sprintf("amount must be a positive number, got %q", raw), model.ErrInvalidAmount)
	}
	return d, nil
}

func parseCategoryFlag(raw string) (model.Category, error) {
	c, err := model.ParseCategory(raw)
	if err != nil {
		return "", common.NewUserError(fmt.Sprintf("unknown category %q (choose one of %s)", raw, categoryChoices()), err)
	}
	return c, nil
}

func categoryChoices() string {
	names := make([]string, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func parseDateFlag(name, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if !model.ValidDate(raw) {
		return "", common.NewUserError(fmt.Sprintf("--%s must be a YYYY-MM-DD date, got %q", name, raw), model.ErrInvalidDate)
	}
	return raw, nil
}

// addFilterFlags registers --from, --to and --category on cmd.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "Only include expenses on or after this date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "Only include expenses on or before this date (YYYY-MM-DD)")
	cmd.Flags().String("category", "", "Only include expenses in this category")
}

func criteriaFromFlags(cmd *cobra.Command) (ledger.Criteria, error) {
	var c ledger.Criteria

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	category, _ := cmd.Flags().GetString("category")

	var err error
	if c.StartDate, err = parseDateFlag("from", from); err != nil {
		return c, err
	}
	if c.EndDate, err = parseDateFlag("to", to); err != nil {
		return c, err
	}
	if category != "" {
		if c.Category, err = parseCategoryFlag(category); err != nil {
			return c, err
		}
	}
	return c, nil
}

func printAlerts(w io.Writer, alerts []ledger.Alert) {
	for _, a := range alerts {
		if _, err := fmt.Fprintln(w, cli.FormatAlert(a)); err != nil {
			slog.Warn("Failed to write alert", "error", err)
		}
	}
}

func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	p := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	return p.Confirm(cmd.Context(), prompt)
}
