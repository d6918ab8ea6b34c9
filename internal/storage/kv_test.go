package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_MissingKey(t *testing.T) {
	store := createTestStorage(t)

	value, ok, err := store.Get(context.Background(), "expenses")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestSet_OverwritesEntireValue(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "expenses", []byte(`[{"id":"a"},{"id":"b"}]`)))
	require.NoError(t, store.Set(ctx, "expenses", []byte(`[]`)))

	value, ok, err := store.Get(ctx, "expenses")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", string(value))
}

func TestSet_EmptyValueIsStored(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "budget", []byte{}))

	value, ok, err := store.Get(ctx, "budget")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, value)
}

func TestSet_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		wantErr error
		ctx     context.Context
		name    string
		key     string
		value   []byte
	}{
		{name: "empty key", ctx: ctx, key: "", value: []byte("x"), wantErr: ErrEmptyString},
		{name: "blank key", ctx: ctx, key: "   ", value: []byte("x"), wantErr: ErrEmptyString},
		{name: "nil value", ctx: ctx, key: "budget", value: nil, wantErr: ErrNilValue},
		{name: "nil context", ctx: nil, key: "budget", value: []byte("x"), wantErr: ErrNilContext},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Set(tt.ctx, tt.key, tt.value) //nolint:staticcheck // nil context is the case under test
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestKeys(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	for _, k := range []string{"expenses", "budget", "categoryBudgets"} {
		require.NoError(t, store.Set(ctx, k, []byte("{}")))
	}

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"budget", "categoryBudgets", "expenses"}, keys)
}

func TestUpdatedAt(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, ok, err := store.UpdatedAt(ctx, "budget")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "budget", []byte("100")))

	ts, ok, err := store.UpdatedAt(ctx, "budget")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, ts.IsZero())
}
