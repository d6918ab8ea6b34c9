package importer

import (
	"fmt"
	"strings"
)

// Unselected marks a role that has no column assigned.
const Unselected = -1

// Mapping assigns staged columns to record fields by zero-based index.
type Mapping struct {
	Date        int
	Description int
	Amount      int
}

// UnselectedMapping returns a mapping with no columns chosen.
func UnselectedMapping() Mapping {
	return Mapping{Date: Unselected, Description: Unselected, Amount: Unselected}
}

// Complete reports whether every role has a column.
func (m Mapping) Complete() bool {
	return m.Date >= 0 && m.Description >= 0 && m.Amount >= 0
}

func (m Mapping) validate(columns int) error {
	if !m.Complete() {
		return ErrColumnNotSelected
	}
	for _, idx := range []int{m.Date, m.Description, m.Amount} {
		if idx >= columns {
			return fmt.Errorf("%w: column %d of %d", ErrColumnOutOfRange, idx+1, columns)
		}
	}
	return nil
}

var (
	dateHints        = []string{"date", "posted"}
	descriptionHints = []string{"description", "memo", "merchant"}
	amountHints      = []string{"amount", "debit", "withdrawal"}
)

// SuggestMapping guesses column roles from header labels. Each header is
// tested for the date, description and amount hints in that order and gets
// at most one role; when several headers match the same role the last one
// wins.
func SuggestMapping(headers []string) Mapping {
	m := UnselectedMapping()
	for i, h := range headers {
		lower := strings.ToLower(h)
		switch {
		case containsAny(lower, dateHints):
			m.Date = i
		case containsAny(lower, descriptionHints):
			m.Description = i
		case containsAny(lower, amountHints):
			m.Amount = i
		}
	}
	return m
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// SuggestMapping guesses column roles for the staged headers.
func (p *Pipeline) SuggestMapping() Mapping {
	return SuggestMapping(p.headers)
}

// Map confirms the column mapping for the staged rows.
func (p *Pipeline) Map(m Mapping) error {
	if !p.staged() {
		return ErrNoStagedImport
	}
	if err := m.validate(len(p.headers)); err != nil {
		return err
	}
	p.mapping = m
	p.stage = StageMapped
	return nil
}

// Mapping returns the confirmed mapping, or an unselected one before Map.
func (p *Pipeline) Mapping() Mapping {
	return p.mapping
}
