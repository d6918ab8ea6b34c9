package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validExpense() Expense {
	return Expense{
		ID:          "a",
		Description: "Coffee",
		Amount:      decimal.RequireFromString("3.50"),
		Category:    CategoryFood,
		Date:        "2024-01-01",
	}
}

func TestExpense_Validate(t *testing.T) {
	tests := []struct {
		mutate  func(*Expense)
		wantErr error
		name    string
	}{
		{name: "valid", mutate: func(*Expense) {}},
		{name: "blank description", mutate: func(e *Expense) { e.Description = "  " }, wantErr: ErrEmptyDescription},
		{name: "zero amount", mutate: func(e *Expense) { e.Amount = decimal.Zero }, wantErr: ErrInvalidAmount},
		{name: "negative amount", mutate: func(e *Expense) { e.Amount = decimal.NewFromInt(-1) }, wantErr: ErrInvalidAmount},
		{name: "unknown category", mutate: func(e *Expense) { e.Category = "pets" }, wantErr: ErrInvalidCategory},
		{name: "impossible date", mutate: func(e *Expense) { e.Date = "2023-02-29" }, wantErr: ErrInvalidDate},
		{name: "non canonical date", mutate: func(e *Expense) { e.Date = "2024-1-01" }, wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validExpense()
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2024-02-29"))
	assert.False(t, ValidDate("2023-02-29"))
	assert.False(t, ValidDate("2024/02/01"))
	assert.False(t, ValidDate(""))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "3.50", FormatAmount(decimal.RequireFromString("3.5")))
	assert.Equal(t, "10.00", FormatAmount(decimal.NewFromInt(10)))
	assert.Equal(t, "0.13", FormatAmount(decimal.RequireFromString("0.125")))
}

func TestExpense_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(validExpense())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a","description":"Coffee","amount":3.5,"category":"food","date":"2024-01-01"}`, string(data))
}

func TestExpense_UnmarshalJSON(t *testing.T) {
	t.Run("string id", func(t *testing.T) {
		var e Expense
		require.NoError(t, json.Unmarshal([]byte(`{"id":"x1","description":"Taxi","amount":18,"category":"transport","date":"2024-01-02"}`), &e))
		assert.Equal(t, "x1", e.ID)
		assert.Equal(t, CategoryTransport, e.Category)
		assert.True(t, e.Amount.Equal(decimal.NewFromInt(18)))
	})

	t.Run("numeric id from older data", func(t *testing.T) {
		var e Expense
		require.NoError(t, json.Unmarshal([]byte(`{"id":1709251200000,"description":"Taxi","amount":"18.25","category":"transport","date":"2024-01-02"}`), &e))
		assert.Equal(t, "1709251200000", e.ID)
		assert.Equal(t, "18.25", e.Amount.String())
	})

	t.Run("invalid id", func(t *testing.T) {
		var e Expense
		assert.Error(t, json.Unmarshal([]byte(`{"id":true}`), &e))
	})
}
