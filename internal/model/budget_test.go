package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBudgetAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"500", "500"},
		{" 12.5 ", "12.5"},
		{"0", "0"},
		{"-10", "0"},
		{"abc", "0"},
		{"", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBudgetAmount(tt.input).String())
		})
	}
}

func TestBudget_ForCategory(t *testing.T) {
	b := NewBudget()
	b.ByCategory[CategoryFood] = decimal.NewFromInt(200)
	b.ByCategory[CategoryBills] = decimal.Zero

	amount, ok := b.ForCategory(CategoryFood)
	assert.True(t, ok)
	assert.Equal(t, "200", amount.String())

	_, ok = b.ForCategory(CategoryBills)
	assert.False(t, ok)
	_, ok = b.ForCategory(CategoryHealth)
	assert.False(t, ok)
}

func TestCategoryBudgetsJSON(t *testing.T) {
	data, err := MarshalCategoryBudgets(map[Category]decimal.Decimal{
		CategoryFood:  decimal.RequireFromString("200.50"),
		CategoryBills: decimal.Zero,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"food":200.5}`, string(data))

	decoded, err := UnmarshalCategoryBudgets([]byte(`{"food":200.5,"transport":0,"bills":-3}`))
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, "200.5", decoded[CategoryFood].String())

	_, err = UnmarshalCategoryBudgets([]byte(`[1,2]`))
	assert.Error(t, err)
}
