package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/spent/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequentialIDs(t *testing.T) {
	next := SequentialIDs("exp")
	assert.Equal(t, "exp-1", next())
	assert.Equal(t, "exp-2", next())

	other := SequentialIDs("exp")
	assert.Equal(t, "exp-1", other(), "generators are independent")
}

func TestExpenseBuilder(t *testing.T) {
	e := NewExpense("x").Description("Rent").Amount("1200.00").Category(model.CategoryBills).Date("2024-02-01").Build()

	require.NoError(t, e.Validate())
	assert.Equal(t, "x", e.ID)
	assert.Equal(t, "1200.00", model.FormatAmount(e.Amount))
	assert.Equal(t, model.CategoryBills, e.Category)
	assert.NoError(t, NewExpense("d").Build().Validate())
}

func TestSetupTestStorageWith(t *testing.T) {
	store := SetupTestStorageWith(t, map[string]string{"budget": "150"})

	v, ok, err := store.Get(context.Background(), "budget")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "150", string(v))
}
