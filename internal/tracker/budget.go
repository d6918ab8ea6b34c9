package tracker

import (
	"context"
	"log/slog"
	"maps"

	"github.com/Veraticus/spent/internal/ledger"
	"github.com/Veraticus/spent/internal/model"
	"github.com/shopspring/decimal"
)

// Budget returns a copy of the budget configuration.
func (t *Tracker) Budget() model.Budget {
	b := model.NewBudget()
	b.Overall = t.budget.Overall
	maps.Copy(b.ByCategory, t.budget.ByCategory)
	return b
}

// SetBudget stores the overall budget. Input that is not a non-negative number
// clears it. Setting a budget does not raise alerts.
func (t *Tracker) SetBudget(ctx context.Context, raw string) (decimal.Decimal, error) {
	t.budget.Overall = model.ParseBudgetAmount(raw)
	if err := t.saveBudget(ctx); err != nil {
		return t.budget.Overall, err
	}
	slog.Debug("Set overall budget", "budget", t.budget.Overall.String())
	return t.budget.Overall, nil
}

// SetCategoryBudgets updates the budgets of the given categories. An entry
// that does not parse to a positive amount removes that category's budget;
// categories not mentioned keep theirs. After saving, every configured
// category is checked and the combined alert report is returned (empty when
// no category reached a threshold).
func (t *Tracker) SetCategoryBudgets(ctx context.Context, updates map[model.Category]string) (string, error) {
	for c, raw := range updates {
		amount := model.ParseBudgetAmount(raw)
		if amount.IsPositive() {
			t.budget.ByCategory[c] = amount
		} else {
			delete(t.budget.ByCategory, c)
		}
	}

	if err := t.saveCategoryBudgets(ctx); err != nil {
		return "", err
	}

	report, flagged := ledger.CategorySweep(t.store, t.budget)
	slog.Debug("Set category budgets",
		"configured", len(t.budget.ByCategory),
		"flagged", len(flagged))
	return report, nil
}

// Summary is the budget overview for a filtered view of the expenses.
type Summary struct {
	// Overall compares the filtered total against the overall budget.
	Overall    ledger.Status
	Categories []ledger.Status // every configured category, over all expenses
	ByCategory []ledger.CategoryTotal
	Daily      []ledger.DayTotal
	Total      decimal.Decimal
	Count      int
}

// Summary reports totals and budget status for the expenses matching c.
// Category budget progress always covers every expense.
func (t *Tracker) Summary(c ledger.Criteria) Summary {
	filtered := t.store.Filter(c)
	total := ledger.Total(filtered)

	return Summary{
		Total:      total,
		Count:      len(filtered),
		Overall:    ledger.BudgetStatus(ledger.OverallScope(), total, t.budget.Overall),
		Categories: ledger.CategoryStatuses(t.store, t.budget),
		ByCategory: ledger.SortedCategories(ledger.TotalsByCategory(filtered)),
		Daily:      ledger.SortedDays(ledger.TotalsByDay(filtered)),
	}
}
