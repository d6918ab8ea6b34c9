package testutil

import (
	"fmt"
	"sync"

	"github.com/Veraticus/spent/internal/model"
	"github.com/shopspring/decimal"
)

// SequentialIDs returns an id generator producing prefix-1, prefix-2, ...
func SequentialIDs(prefix string) func() string {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// ExpenseBuilder assembles a valid expense with overridable fields.
type ExpenseBuilder struct {
	e model.Expense
}

// NewExpense starts a builder for a 10.00 "Coffee" expense in the food
// category dated 2024-01-15.
func NewExpense(id string) *ExpenseBuilder {
	return &ExpenseBuilder{e: model.Expense{
		ID:          id,
		Description: "Coffee",
		Amount:      decimal.NewFromInt(10),
		Category:    model.CategoryFood,
		Date:        "2024-01-15",
	}}
}

// Description sets the description.
func (b *ExpenseBuilder) Description(d string) *ExpenseBuilder {
	b.e.Description = d
	return b
}

// Amount sets the amount from a decimal string and panics on bad input.
func (b *ExpenseBuilder) Amount(a string) *ExpenseBuilder {
	b.e.Amount = decimal.RequireFromString(a)
	return b
}

// Category sets the category.
func (b *ExpenseBuilder) Category(c model.Category) *ExpenseBuilder {
	b.e.Category = c
	return b
}

// Date sets the date.
func (b *ExpenseBuilder) Date(d string) *ExpenseBuilder {
	b.e.Date = d
	return b
}

// Build returns the expense.
func (b *ExpenseBuilder) Build() model.Expense {
	return b.e
}
