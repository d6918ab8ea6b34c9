package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestNewInterruptHandler_DefaultsWriter(t *testing.T) {
	h := NewInterruptHandler(nil, "")
	assert.NotNil(t, h.writer)
	assert.False(t, h.WasInterrupted())
}

func TestHandleInterrupts_Signal(t *testing.T) {
	output := &syncBuffer{}
	h := NewInterruptHandler(output, "Nothing further was saved.")

	ctx, stop := h.HandleInterrupts(context.Background())
	defer stop()

	h.signals <- syscall.SIGTERM

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not canceled by the signal")
	}

	require.Eventually(t, h.WasInterrupted, time.Second, 10*time.Millisecond)
	out := output.String()
	assert.Contains(t, out, "Interrupted!")
	assert.Contains(t, out, "Nothing further was saved.")
	assert.Equal(t, 1, strings.Count(out, "Interrupted!"))
}

func TestHandleInterrupts_Stop(t *testing.T) {
	output := &syncBuffer{}
	h := NewInterruptHandler(output, "")

	ctx, stop := h.HandleInterrupts(context.Background())
	stop()
	stop()

	<-ctx.Done()
	assert.False(t, h.WasInterrupted())
	assert.Empty(t, output.String())
}
