package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/spent/internal/model"
)

// MockWriter records Write calls for tests of code that exports to sheets.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, records []model.Expense) error
	WriteCalls     []WriteCall
	LastRecords    []model.Expense
	WriteCallCount int
	mu             sync.Mutex
}

// WriteCall represents a single call to Write.
type WriteCall struct {
	Error   error
	Records []model.Expense
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{
		WriteCalls: make([]WriteCall, 0),
	}
}

// Write records the call and returns the configured error, if any.
func (m *MockWriter) Write(ctx context.Context, records []model.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastRecords = records

	var err error
	if m.WriteFunc != nil {
		err = m.WriteFunc(ctx, records)
	}

	m.WriteCalls = append(m.WriteCalls, WriteCall{
		Records: records,
		Error:   err,
	})

	return err
}

// GetWriteCalls returns a copy of all write calls.
func (m *MockWriter) GetWriteCalls() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]WriteCall, len(m.WriteCalls))
	copy(calls, m.WriteCalls)
	return calls
}

// SetWriteError configures the mock to fail every Write with err.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(_ context.Context, _ []model.Expense) error {
		return err
	}
}
