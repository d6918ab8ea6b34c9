package tracker

import (
	"context"
	"io"
	"log/slog"

	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/export"
	"github.com/Veraticus/spent/internal/ledger"
	"github.com/Veraticus/spent/internal/model"
)

// SheetWriter publishes expenses to a spreadsheet.
type SheetWriter interface {
	Write(ctx context.Context, records []model.Expense) error
}

// ExportCSV writes every expense as CSV.
func (t *Tracker) ExportCSV(w io.Writer) error {
	if t.store.Len() == 0 {
		return common.ErrNothingToExport
	}
	return export.WriteCSV(w, t.store.All())
}

// ExportJSON writes the overall budget and every expense as JSON, stamped
// with the current time.
func (t *Tracker) ExportJSON(w io.Writer) error {
	if t.store.Len() == 0 {
		return common.ErrNothingToExport
	}
	return export.WriteJSON(w, t.budget.Overall, t.store.All(), t.now())
}

// ExportSheets publishes every expense through sw, most recent first.
func (t *Tracker) ExportSheets(ctx context.Context, sw SheetWriter) error {
	if t.store.Len() == 0 {
		return common.ErrNothingToExport
	}
	records := ledger.SortedByDateDesc(t.store.All())
	if err := sw.Write(ctx, records); err != nil {
		return err
	}
	slog.Info("Exported expenses to sheets", "expenses", len(records))
	return nil
}
