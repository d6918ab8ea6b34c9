// Package tracker owns the expense ledger, the budget configuration and the
// import pipeline, and keeps them persisted in a key-value store.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/importer"
	"github.com/Veraticus/spent/internal/ledger"
	"github.com/Veraticus/spent/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Persistence keys.
const (
	KeyExpenses        = "expenses"
	KeyBudget          = "budget"
	KeyCategoryBudgets = "categoryBudgets"
)

// KV is the key-value store the tracker persists into. Set replaces the whole
// value stored under key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Tracker is the single owner of all expense state.
type Tracker struct {
	kv       KV
	store    *ledger.Store
	pipeline *importer.Pipeline
	newID    func() string
	now      func() time.Time
	budget   model.Budget
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithIDGenerator sets the generator for new record ids, including imported
// ones.
func WithIDGenerator(fn func() string) Option {
	return func(t *Tracker) {
		t.newID = fn
	}
}

// WithClock sets the time source used for default dates and export stamps.
func WithClock(fn func() time.Time) Option {
	return func(t *Tracker) {
		t.now = fn
	}
}

// Open loads the persisted state from kv. Missing keys mean no expenses and
// no budgets.
func Open(ctx context.Context, kv KV, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		kv:     kv,
		newID:  uuid.NewString,
		now:    time.Now,
		budget: model.NewBudget(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.pipeline = importer.NewPipeline(importer.WithIDGenerator(t.newID))

	records, err := t.loadExpenses(ctx)
	if err != nil {
		return nil, err
	}
	t.store = ledger.NewStore(records...)

	if t.budget.Overall, err = t.loadBudget(ctx); err != nil {
		return nil, err
	}
	if t.budget.ByCategory, err = t.loadCategoryBudgets(ctx); err != nil {
		return nil, err
	}

	slog.Debug("Loaded tracker state",
		"expenses", t.store.Len(),
		"budget", t.budget.Overall.String(),
		"category_budgets", len(t.budget.ByCategory))

	return t, nil
}

// Today returns the current date in canonical form.
func (t *Tracker) Today() string {
	return t.now().Format(model.DateLayout)
}

// Now returns the tracker's current time.
func (t *Tracker) Now() time.Time {
	return t.now()
}

func (t *Tracker) loadExpenses(ctx context.Context) ([]model.Expense, error) {
	data, ok, err := t.kv.Get(ctx, KeyExpenses)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	if !ok || len(data) == 0 {
		return nil, nil
	}

	var records []model.Expense
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: expenses: %v", common.ErrCorruptData, err)
	}
	return records, nil
}

func (t *Tracker) loadBudget(ctx context.Context) (decimal.Decimal, error) {
	data, ok, err := t.kv.Get(ctx, KeyBudget)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load budget: %w", err)
	}
	if !ok || len(data) == 0 {
		return decimal.Zero, nil
	}

	var budget decimal.Decimal
	if err := json.Unmarshal(data, &budget); err != nil {
		return decimal.Zero, fmt.Errorf("%w: budget: %v", common.ErrCorruptData, err)
	}
	if budget.IsNegative() {
		return decimal.Zero, nil
	}
	return budget, nil
}

func (t *Tracker) loadCategoryBudgets(ctx context.Context) (map[model.Category]decimal.Decimal, error) {
	data, ok, err := t.kv.Get(ctx, KeyCategoryBudgets)
	if err != nil {
		return nil, fmt.Errorf("failed to load category budgets: %w", err)
	}
	if !ok || len(data) == 0 {
		return make(map[model.Category]decimal.Decimal), nil
	}

	budgets, err := model.UnmarshalCategoryBudgets(data)
	if err != nil {
		return nil, fmt.Errorf("%w: category budgets: %v", common.ErrCorruptData, err)
	}
	return budgets, nil
}

func (t *Tracker) saveExpenses(ctx context.Context) error {
	data, err := json.Marshal(t.store.All())
	if err != nil {
		return fmt.Errorf("failed to encode expenses: %w", err)
	}
	if err := t.kv.Set(ctx, KeyExpenses, data); err != nil {
		return fmt.Errorf("failed to save expenses: %w", err)
	}
	return nil
}

func (t *Tracker) saveBudget(ctx context.Context) error {
	data, err := json.Marshal(json.Number(t.budget.Overall.String()))
	if err != nil {
		return fmt.Errorf("failed to encode budget: %w", err)
	}
	if err := t.kv.Set(ctx, KeyBudget, data); err != nil {
		return fmt.Errorf("failed to save budget: %w", err)
	}
	return nil
}

func (t *Tracker) saveCategoryBudgets(ctx context.Context) error {
	data, err := model.MarshalCategoryBudgets(t.budget.ByCategory)
	if err != nil {
		return fmt.Errorf("failed to encode category budgets: %w", err)
	}
	if err := t.kv.Set(ctx, KeyCategoryBudgets, data); err != nil {
		return fmt.Errorf("failed to save category budgets: %w", err)
	}
	return nil
}

// timestampedKV is implemented by stores that record when each key was last
// written.
type timestampedKV interface {
	Keys(ctx context.Context) ([]string, error)
	UpdatedAt(ctx context.Context, key string) (time.Time, bool, error)
}

// LastSaved returns the most recent write time across all persisted keys. It
// reports false when nothing has been saved yet or the store keeps no
// timestamps.
func (t *Tracker) LastSaved(ctx context.Context) (time.Time, bool, error) {
	ts, ok := t.kv.(timestampedKV)
	if !ok {
		return time.Time{}, false, nil
	}

	keys, err := ts.Keys(ctx)
	if err != nil {
		return time.Time{}, false, err
	}

	var latest time.Time
	found := false
	for _, key := range keys {
		at, ok, err := ts.UpdatedAt(ctx, key)
		if err != nil {
			return time.Time{}, false, err
		}
		if ok && (!found || at.After(latest)) {
			latest, found = at, true
		}
	}
	return latest, found, nil
}
