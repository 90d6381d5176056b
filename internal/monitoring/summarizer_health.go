package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const HEALTHCHECK_TIMEOUT = 5 * time.Second

type SummarizerHealthChecker interface {
	SummarizerHealthCheck(ctx context.Context) bool
}

// MonitorSummarizerHealth checks the summarizer every interval until ctx is
// done, storing the result in healthy and logging transitions. It only
// observes; summarization itself still falls back per request.
func MonitorSummarizerHealth(ctx context.Context, checker SummarizerHealthChecker, interval time.Duration, healthy *atomic.Bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			checkOnce(ctx, checker, healthy)
		}
	}
}

func checkOnce(ctx context.Context, checker SummarizerHealthChecker, healthy *atomic.Bool) {
	checkCtx, cancel := context.WithTimeout(ctx, HEALTHCHECK_TIMEOUT)
	defer cancel()

	isHealthy := checker.SummarizerHealthCheck(checkCtx)
	was := healthy.Swap(isHealthy)

	switch {
	case !isHealthy:
		slog.Warn("[HealthCheck] Summarizer is unhealthy, requests will use fallback summaries")
	case !was:
		slog.Info("[HealthCheck] Summarizer recovered")
	}
}
