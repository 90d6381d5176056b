package monitoring

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type flakyChecker struct {
	healthy atomic.Bool
	calls   atomic.Int32
}

func (f *flakyChecker) SummarizerHealthCheck(_ context.Context) bool {
	f.calls.Add(1)
	return f.healthy.Load()
}

func TestCheckOnce_StoresResult(t *testing.T) {
	t.Parallel()

	checker := &flakyChecker{}
	healthy := &atomic.Bool{}
	healthy.Store(true)

	checkOnce(context.Background(), checker, healthy)
	if healthy.Load() {
		t.Fatalf("expected unhealthy")
	}

	checker.healthy.Store(true)
	checkOnce(context.Background(), checker, healthy)
	if !healthy.Load() {
		t.Fatalf("expected healthy")
	}
}

func TestMonitorSummarizerHealth_StopsOnCancel(t *testing.T) {
	t.Parallel()

	checker := &flakyChecker{}
	checker.healthy.Store(true)
	healthy := &atomic.Bool{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		MonitorSummarizerHealth(ctx, checker, time.Millisecond, healthy)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for checker.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("monitor never checked")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("monitor did not stop")
	}
	if !healthy.Load() {
		t.Fatalf("expected healthy after checks")
	}
}
