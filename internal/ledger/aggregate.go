package ledger

import (
	"sort"

	"github.com/Veraticus/spent/internal/model"
	"github.com/shopspring/decimal"
)

// Total sums the amounts of records.
func Total(records []model.Expense) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range records {
		sum = sum.Add(r.Amount)
	}
	return sum
}

// TotalsByCategory sums amounts per category. Only categories present in
// records appear in the result.
func TotalsByCategory(records []model.Expense) map[model.Category]decimal.Decimal {
	totals := make(map[model.Category]decimal.Decimal)
	for _, r := range records {
		totals[r.Category] = totals[r.Category].Add(r.Amount)
	}
	return totals
}

// TotalsByDay sums amounts per canonical date.
func TotalsByDay(records []model.Expense) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, r := range records {
		totals[r.Date] = totals[r.Date].Add(r.Amount)
	}
	return totals
}

// Total sums every record in the store.
func (s *Store) Total() decimal.Decimal {
	return Total(s.records)
}

// TotalsByCategory sums every record in the store per category.
func (s *Store) TotalsByCategory() map[model.Category]decimal.Decimal {
	return TotalsByCategory(s.records)
}

// DayTotal is one point of the daily spending trend.
type DayTotal struct {
	Amount decimal.Decimal
	Date   string
}

// SortedDays flattens per-day totals into ascending date order.
func SortedDays(totals map[string]decimal.Decimal) []DayTotal {
	days := make([]DayTotal, 0, len(totals))
	for date, amount := range totals {
		days = append(days, DayTotal{Date: date, Amount: amount})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
	return days
}

// CategoryTotal is one slice of the category breakdown.
type CategoryTotal struct {
	Amount   decimal.Decimal
	Category model.Category
}

// SortedCategories flattens per-category totals into enumeration order, with
// unrecognized categories after the known ones in name order.
func SortedCategories(totals map[model.Category]decimal.Decimal) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(totals))
	for _, c := range model.Categories() {
		if amount, ok := totals[c]; ok {
			out = append(out, CategoryTotal{Category: c, Amount: amount})
		}
	}

	var unknown []CategoryTotal
	for c, amount := range totals {
		if !c.Valid() {
			unknown = append(unknown, CategoryTotal{Category: c, Amount: amount})
		}
	}
	sort.Slice(unknown, func(i, j int) bool {
		return unknown[i].Category < unknown[j].Category
	})
	return append(out, unknown...)
}
