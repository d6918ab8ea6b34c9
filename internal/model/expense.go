package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical calendar date format used for every expense.
const DateLayout = "2006-01-02"

// Expense validation errors.
var (
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrInvalidDate      = errors.New("date must be a valid YYYY-MM-DD calendar date")
	ErrInvalidCategory  = errors.New("invalid category")
)

// Expense is a single recorded expense.
type Expense struct {
	Amount      decimal.Decimal
	ID          string
	Description string
	Category    Category
	Date        string // YYYY-MM-DD
}

// Validate checks the fields a caller must supply before handing the expense
// to the ledger.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if !e.Amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, e.Amount.String())
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, string(e.Category))
	}
	if !ValidDate(e.Date) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, e.Date)
	}
	return nil
}

// ValidDate reports whether s is a real calendar date in canonical form.
func ValidDate(s string) bool {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return false
	}
	// time.Parse accepts some non-canonical inputs; require a round trip.
	return t.Format(DateLayout) == s
}

// FormatAmount renders an amount with exactly two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type expenseJSON struct {
	ID          json.RawMessage `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	Date        string          `json:"date"`
}

// MarshalJSON stores the amount as a JSON number.
func (e Expense) MarshalJSON() ([]byte, error) {
	id, err := json.Marshal(e.ID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		ID          json.RawMessage `json:"id"`
		Description string          `json:"description"`
		Amount      json.Number     `json:"amount"`
		Category    Category        `json:"category"`
		Date        string          `json:"date"`
	}{
		ID:          id,
		Description: e.Description,
		Amount:      json.Number(e.Amount.String()),
		Category:    e.Category,
		Date:        e.Date,
	})
}

// UnmarshalJSON accepts ids written either as strings or as the numeric
// timestamps older data files used.
func (e *Expense) UnmarshalJSON(data []byte) error {
	var raw expenseJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, err := decodeID(raw.ID)
	if err != nil {
		return err
	}

	*e = Expense{
		ID:          id,
		Description: raw.Description,
		Amount:      raw.Amount,
		Category:    raw.Category,
		Date:        raw.Date,
	}
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("invalid expense id: %w", err)
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("invalid expense id: %w", err)
	}
	return n.String(), nil
}
