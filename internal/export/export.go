// Package export renders expenses as downloadable CSV and JSON documents.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Veraticus/spent/internal/model"
	"github.com/shopspring/decimal"
)

// Format is an export file format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Filename is the default file name for the format.
func (f Format) Filename() string {
	return "expenses." + string(f)
}

// ParseFormat resolves a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want csv or json)", s)
	}
}

// csvHeader is written without quotes; data cells are always quoted.
const csvHeader = "Date,Description,Category,Amount"

// WriteCSV writes records as CSV: an unquoted header line followed by one line
// per record with every cell wrapped in double quotes. Embedded quotes are
// doubled. Lines are separated by "\n" with no trailing newline.
func WriteCSV(w io.Writer, records []model.Expense) error {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, csvHeader)
	for _, r := range records {
		lines = append(lines, strings.Join([]string{
			quote(r.Date),
			quote(r.Description),
			quote(r.Category.Label()),
			quote(model.FormatAmount(r.Amount)),
		}, ","))
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

func quote(cell string) string {
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}

// exportTimeLayout is RFC 3339 in UTC with millisecond precision.
const exportTimeLayout = "2006-01-02T15:04:05.000Z"

type document struct {
	Budget     json.Number     `json:"budget"`
	Expenses   []model.Expense `json:"expenses"`
	ExportDate string          `json:"exportDate"`
}

// WriteJSON writes the overall budget, the records as persisted and the
// export time as a two-space indented JSON document.
func WriteJSON(w io.Writer, budget decimal.Decimal, records []model.Expense, now time.Time) error {
	if records == nil {
		records = []model.Expense{}
	}
	doc := document{
		Budget:     json.Number(budget.String()),
		Expenses:   records,
		ExportDate: now.UTC().Format(exportTimeLayout),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	_, err = w.Write(data)
	return err
}
