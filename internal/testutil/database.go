// Package testutil provides shared helpers for tests that need a migrated
// store or sample expenses.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/spent/internal/storage"
)

// SetupTestStorage creates a migrated in-memory store that is closed when the
// test ends.
func SetupTestStorage(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(storage.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// SetupTestStorageWith creates a test store pre-populated with raw values,
// for tests that load data written by older versions.
func SetupTestStorageWith(t *testing.T, values map[string]string) *storage.SQLiteStorage {
	t.Helper()

	store := SetupTestStorage(t)
	ctx := context.Background()
	for k, v := range values {
		if err := store.Set(ctx, k, []byte(v)); err != nil {
			t.Fatalf("failed to seed key %q: %v", k, err)
		}
	}
	return store
}
