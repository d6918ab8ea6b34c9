package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/ledger"
	"github.com/Veraticus/spent/internal/model"
	"github.com/shopspring/decimal"
)

// ExpenseInput is the user-supplied part of an expense.
type ExpenseInput struct {
	Amount      decimal.Decimal
	Description string
	Category    model.Category
	Date        string // YYYY-MM-DD
}

// toExpense builds and validates the expense. A category equal to current is
// accepted even when it is outside the enumeration, so records loaded with a
// legacy category can still be edited without recategorizing them.
func (in ExpenseInput) toExpense(id string, current model.Category) (model.Expense, error) {
	e := model.Expense{
		ID:          id,
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount,
		Category:    in.Category,
		Date:        strings.TrimSpace(in.Date),
	}
	check := e
	if current != "" && e.Category == current {
		check.Category = model.CategoryOther
	}
	if err := check.Validate(); err != nil {
		return model.Expense{}, err
	}
	return e, nil
}

// AddExpense records a new expense under a fresh id and returns it together
// with any budget alerts the insertion triggered.
func (t *Tracker) AddExpense(ctx context.Context, in ExpenseInput) (model.Expense, []ledger.Alert, error) {
	e, err := in.toExpense(t.newID(), "")
	if err != nil {
		return model.Expense{}, nil, err
	}

	t.store.AddOrReplace(e)
	alerts := ledger.InsertAlerts(t.store, t.budget, e.Category)

	if err := t.saveExpenses(ctx); err != nil {
		return e, alerts, err
	}

	slog.Debug("Added expense", "id", e.ID, "category", e.Category, "alerts", len(alerts))
	return e, alerts, nil
}

// EditExpense replaces the fields of an existing expense, keeping its id and
// position. Edits never raise budget alerts.
func (t *Tracker) EditExpense(ctx context.Context, id string, in ExpenseInput) (model.Expense, error) {
	prev, ok := t.store.Get(id)
	if !ok {
		return model.Expense{}, fmt.Errorf("expense %s: %w", id, common.ErrNotFound)
	}

	e, err := in.toExpense(id, prev.Category)
	if err != nil {
		return model.Expense{}, err
	}

	t.store.AddOrReplace(e)
	if err := t.saveExpenses(ctx); err != nil {
		return e, err
	}

	slog.Debug("Edited expense", "id", id)
	return e, nil
}

// DeleteExpense removes an expense. It reports whether anything was removed;
// an unknown id is not an error.
func (t *Tracker) DeleteExpense(ctx context.Context, id string) (bool, error) {
	if !t.store.Contains(id) {
		return false, nil
	}

	t.store.Remove(id)
	if err := t.saveExpenses(ctx); err != nil {
		return true, err
	}

	slog.Debug("Deleted expense", "id", id)
	return true, nil
}

// Expense returns the expense with the given id.
func (t *Tracker) Expense(id string) (model.Expense, bool) {
	return t.store.Get(id)
}

// Expenses returns the expenses matching c in insertion order.
func (t *Tracker) Expenses(c ledger.Criteria) []model.Expense {
	return t.store.Filter(c)
}

// Count returns the number of stored expenses.
func (t *Tracker) Count() int {
	return t.store.Len()
}
