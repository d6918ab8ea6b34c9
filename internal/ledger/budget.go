package ledger

import (
	"github.com/Veraticus/spent/internal/model"
	"github.com/shopspring/decimal"
)

// Tier classifies how much of a budget has been used.
type Tier int

const (
	// TierOK means under 80% of the budget was used, or no budget is set.
	TierOK Tier = iota
	// TierWarning means at least 80% but less than 100% was used.
	TierWarning
	// TierExceeded means the budget was fully used or overspent.
	TierExceeded
)

func (t Tier) String() string {
	switch t {
	case TierOK:
		return "ok"
	case TierWarning:
		return "warning"
	case TierExceeded:
		return "exceeded"
	default:
		return "unknown"
	}
}

var (
	warningPercent  = decimal.NewFromInt(80)
	exceededPercent = decimal.NewFromInt(100)
	hundred         = decimal.NewFromInt(100)
)

// Scope names what a budget applies to: everything, or a single category.
type Scope struct {
	Category model.Category
}

// OverallScope is the scope of the overall budget.
func OverallScope() Scope {
	return Scope{}
}

// CategoryScope is the scope of a single category budget.
func CategoryScope(c model.Category) Scope {
	return Scope{Category: c}
}

// IsOverall reports whether the scope is the overall budget.
func (s Scope) IsOverall() bool {
	return s.Category == ""
}

// Status is the utilization of one budget.
type Status struct {
	Spent     decimal.Decimal
	Budget    decimal.Decimal
	Percent   decimal.Decimal // not clamped; may exceed 100
	Remaining decimal.Decimal // negative when overspent
	Overage   decimal.Decimal // zero unless overspent
	Scope     Scope
	Tier      Tier
}

// BudgetSet reports whether a positive budget applies.
func (s Status) BudgetSet() bool {
	return s.Budget.IsPositive()
}

// Progress is the used fraction of the budget clamped to [0, 1], for progress
// bars.
func (s Status) Progress() float64 {
	if !s.BudgetSet() {
		return 0
	}
	f := s.Percent.Div(hundred).InexactFloat64()
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

// RoundedPercent is the percentage rounded to a whole number for display.
func (s Status) RoundedPercent() string {
	return s.Percent.Round(0).String()
}

// BudgetStatus classifies spent against budget. A budget of zero or less is
// unset and always yields TierOK. The lower bound of each tier is inclusive:
// exactly 80% is a warning and exactly 100% is exceeded.
func BudgetStatus(scope Scope, spent, budget decimal.Decimal) Status {
	st := Status{
		Scope:     scope,
		Spent:     spent,
		Budget:    budget,
		Percent:   decimal.Zero,
		Remaining: budget.Sub(spent),
		Overage:   decimal.Zero,
		Tier:      TierOK,
	}
	if !budget.IsPositive() {
		return st
	}

	st.Percent = spent.Div(budget).Mul(hundred)
	switch {
	case st.Percent.GreaterThanOrEqual(exceededPercent):
		st.Tier = TierExceeded
		st.Overage = spent.Sub(budget)
	case st.Percent.GreaterThanOrEqual(warningPercent):
		st.Tier = TierWarning
	}
	return st
}

// OverallStatus evaluates the overall budget against every record.
func OverallStatus(s *Store, budget model.Budget) Status {
	return BudgetStatus(OverallScope(), s.Total(), budget.Overall)
}

// CategoryStatuses evaluates every configured category budget against every
// record, in enumeration order followed by unrecognized categories.
func CategoryStatuses(s *Store, budget model.Budget) []Status {
	totals := s.TotalsByCategory()

	configured := make(map[model.Category]decimal.Decimal, len(budget.ByCategory))
	for c := range budget.ByCategory {
		if amount, ok := budget.ForCategory(c); ok {
			configured[c] = amount
		}
	}

	statuses := make([]Status, 0, len(configured))
	for _, ct := range SortedCategories(configured) {
		statuses = append(statuses, BudgetStatus(CategoryScope(ct.Category), totals[ct.Category], ct.Amount))
	}
	return statuses
}
