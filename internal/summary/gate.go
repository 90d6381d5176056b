package summary

import (
	"context"
	"errors"
	"sync/atomic"
)

var ErrSummarizerUnhealthy = errors.New("summarizer marked unhealthy by health monitor")

// HealthGatedSummarizer skips the backend while its health flag is false, so
// requests go straight to the fallback instead of waiting out retries against
// a backend already known to be down.
type HealthGatedSummarizer struct {
	next    Summarizer
	healthy *atomic.Bool
}

func NewHealthGatedSummarizer(next Summarizer, healthy *atomic.Bool) *HealthGatedSummarizer {
	return &HealthGatedSummarizer{next: next, healthy: healthy}
}

func (g *HealthGatedSummarizer) Name() string {
	return g.next.Name()
}

func (g *HealthGatedSummarizer) Summarize(ctx context.Context, text string, params Params) (string, error) {
	if g.healthy != nil && !g.healthy.Load() {
		return "", ErrSummarizerUnhealthy
	}
	return g.next.Summarize(ctx, text, params)
}
