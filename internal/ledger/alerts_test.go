package ledger

import (
	"testing"

	"github.com/Veraticus/spent/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertFor_Messages(t *testing.T) {
	tests := []struct {
		name   string
		scope  Scope
		spent  string
		budget string
		want   string
	}{
		{name: "overall ok", scope: OverallScope(), spent: "10", budget: "100", want: ""},
		{name: "overall warning", scope: OverallScope(), spent: "85", budget: "100", want: "Warning: You have used 85% of your budget."},
		{name: "overall exceeded", scope: OverallScope(), spent: "112.5", budget: "100", want: "You have exceeded your budget by $12.50!"},
		{name: "category warning", scope: CategoryScope(model.CategoryBills), spent: "90", budget: "100", want: "Warning: You have used 90% of your Bills & Utilities budget."},
		{name: "category exceeded", scope: CategoryScope(model.CategoryFood), spent: "100", budget: "100", want: "Food & Dining budget exceeded by $0.00!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := BudgetStatus(tt.scope, decimal.RequireFromString(tt.spent), decimal.RequireFromString(tt.budget))
			a, ok := AlertFor(st)
			if tt.want == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, a.Message)
		})
	}
}

func TestInsertAlerts(t *testing.T) {
	s := sampleStore() // total 222.25, food 100.00
	budget := model.Budget{
		Overall: decimal.NewFromInt(250),
		ByCategory: map[model.Category]decimal.Decimal{
			model.CategoryFood: decimal.NewFromInt(100),
		},
	}

	alerts := InsertAlerts(s, budget, model.CategoryFood)
	require.Len(t, alerts, 2)
	assert.True(t, alerts[0].Scope.IsOverall())
	assert.Equal(t, TierWarning, alerts[0].Tier)
	assert.Equal(t, model.CategoryFood, alerts[1].Scope.Category)
	assert.Equal(t, TierExceeded, alerts[1].Tier)

	// No category budget for transport: only the overall scope is checked.
	alerts = InsertAlerts(s, budget, model.CategoryTransport)
	require.Len(t, alerts, 1)
	assert.True(t, alerts[0].Scope.IsOverall())
}

func TestInsertAlerts_NoBudgets(t *testing.T) {
	assert.Empty(t, InsertAlerts(sampleStore(), model.NewBudget(), model.CategoryFood))
}

func TestCategorySweep(t *testing.T) {
	s := sampleStore()
	budget := model.Budget{
		ByCategory: map[model.Category]decimal.Decimal{
			model.CategoryFood:      decimal.NewFromInt(90),
			model.CategoryTransport: decimal.NewFromInt(35),
			model.CategoryShopping:  decimal.NewFromInt(50),
		},
	}

	report, flagged := CategorySweep(s, budget)
	require.Len(t, flagged, 2)
	assert.Equal(t, "Category Budget Alerts:\n\nFood & Dining: Exceeded by $10.00\nTransportation: 86% used", report)

	report, flagged = CategorySweep(s, model.NewBudget())
	assert.Empty(t, report)
	assert.Empty(t, flagged)
}
