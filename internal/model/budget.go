package model

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Budget holds the overall spending ceiling and the optional per-category
// ceilings. A zero overall budget disables overall alerting.
type Budget struct {
	ByCategory map[Category]decimal.Decimal
	Overall    decimal.Decimal
}

// NewBudget returns an empty budget configuration.
func NewBudget() Budget {
	return Budget{ByCategory: make(map[Category]decimal.Decimal)}
}

// ForCategory returns the budget configured for c. Absent or non-positive
// entries count as no budget.
func (b Budget) ForCategory(c Category) (decimal.Decimal, bool) {
	amount, ok := b.ByCategory[c]
	if !ok || !amount.IsPositive() {
		return decimal.Zero, false
	}
	return amount, true
}

// ParseBudgetAmount converts user input to a budget amount. Input that does not
// parse as a decimal, or is negative, means "unset" and yields zero.
func ParseBudgetAmount(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// MarshalCategoryBudgets encodes category budgets as a JSON object of numbers,
// leaving out categories without a positive budget.
func MarshalCategoryBudgets(budgets map[Category]decimal.Decimal) ([]byte, error) {
	out := make(map[string]json.Number, len(budgets))
	for c, amount := range budgets {
		if !amount.IsPositive() {
			continue
		}
		out[string(c)] = json.Number(amount.String())
	}
	return json.Marshal(out)
}

// UnmarshalCategoryBudgets decodes the JSON object written by
// MarshalCategoryBudgets. Non-positive entries are dropped.
func UnmarshalCategoryBudgets(data []byte) (map[Category]decimal.Decimal, error) {
	var raw map[string]decimal.Decimal
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(map[Category]decimal.Decimal, len(raw))
	for k, v := range raw {
		if v.IsPositive() {
			out[Category(k)] = v
		}
	}
	return out, nil
}
