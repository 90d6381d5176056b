package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"
)

// MIN_SUMMARY_CHARS is the text length (in characters) a text must exceed
// before an AI summary is attempted.
const MIN_SUMMARY_CHARS = 50

// Params mirror the generation settings handed to the summarization model.
type Params struct {
	MaxLength  int
	MinLength  int
	DoSample   bool
	Truncation bool
}

var DefaultParams = Params{
	MaxLength:  120,
	MinLength:  30,
	DoSample:   false,
	Truncation: true,
}

type Summarizer interface {
	Summarize(ctx context.Context, text string, params Params) (string, error)
	// Name identifies the backend and model, e.g. "huggingface:facebook/bart-large-cnn".
	Name() string
}

var (
	ErrNoSummarizer     = errors.New("no summarizer loaded")
	ErrTextTooShort     = errors.New("text too short to summarize")
	ErrEmptySummary     = errors.New("summarizer returned an empty summary")
	ErrSummarizePanic   = errors.New("summarizer panicked")
	ErrSummarizeTimeout = errors.New("summarizer exceeded its time budget")
)

// Result is the outcome of one AI summarization attempt. OK is false whenever
// the caller should use the rule-based fallback; Err says why.
type Result struct {
	Text string
	OK   bool
	Err  error
}

// ShouldAttempt reports whether text is long enough for an AI summary.
func ShouldAttempt(text string) bool {
	return utf8.RuneCountInString(text) > MIN_SUMMARY_CHARS
}

// Attempt runs s on text when a summarizer is present and the text is long
// enough. A positive budget bounds the whole call, retries included; when it
// runs out Attempt returns without waiting for the backend. Attempt never
// returns an error to the caller; failures are reported in the Result.
func Attempt(ctx context.Context, s Summarizer, text string, budget time.Duration) Result {
	if s == nil {
		return Result{Err: ErrNoSummarizer}
	}
	if !ShouldAttempt(text) {
		return Result{Err: ErrTextTooShort}
	}

	if budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}

	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)
	start := time.Now()
	go func() {
		out, err := summarizeSafely(ctx, s, text)
		done <- outcome{text: out, err: err}
	}()

	var out string
	var err error
	select {
	case o := <-done:
		out, err = o.text, o.err
	case <-ctx.Done():
		err = fmt.Errorf("%w: %w", ErrSummarizeTimeout, ctx.Err())
	}

	if err != nil {
		slog.Warn("[Summarizer] Advanced summarization failed",
			slog.String("backend", s.Name()),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return Result{Err: err}
	}

	out = strings.TrimSpace(out)
	if out == "" {
		slog.Warn("[Summarizer] Advanced summarization returned nothing",
			slog.String("backend", s.Name()))
		return Result{Err: ErrEmptySummary}
	}

	slog.Debug("[Summarizer] Summary generated",
		slog.String("backend", s.Name()),
		slog.Duration("elapsed", time.Since(start)))
	return Result{Text: out, OK: true}
}

func summarizeSafely(ctx context.Context, s Summarizer, text string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSummarizePanic, r)
		}
	}()
	return s.Summarize(ctx, text, DefaultParams)
}
