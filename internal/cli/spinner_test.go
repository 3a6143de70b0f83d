package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsMessage(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var buf syncBuffer
	s := newSpinner(context.Background(), &buf, "Synthesizing GEN_4X4_250")
	s.start()
	time.Sleep(200 * time.Millisecond)
	s.stop()

	if !strings.Contains(buf.String(), "Synthesizing GEN_4X4_250") {
		t.Errorf("spinner output %q does not contain message", buf.String())
	}
	if s.cancelled() {
		t.Error("cancelled() = true after stop, want false")
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())

	var buf syncBuffer
	s := newSpinner(ctx, &buf, "waiting")
	s.start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.cancelled() {
		t.Error("cancelled() = false after context cancel, want true")
	}
	s.stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var buf syncBuffer
	s := newSpinner(context.Background(), &buf, "stop twice")
	s.start()
	s.stop()
	s.stop()
}
