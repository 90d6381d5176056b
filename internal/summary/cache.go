package summary

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strconv"
)

const CACHE_KEY_PREFIX = "tweetmood:summary:"

// Cache stores finished AI summaries. Get reports found=false on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string) error
}

// CachedSummarizer serves repeated texts from a cache. Summaries are
// generated without sampling, so a cached value equals a fresh one. Cache
// failures are logged and otherwise ignored.
type CachedSummarizer struct {
	next  Summarizer
	cache Cache
}

func NewCachedSummarizer(next Summarizer, cache Cache) *CachedSummarizer {
	return &CachedSummarizer{next: next, cache: cache}
}

func (c *CachedSummarizer) Name() string {
	return c.next.Name()
}

func (c *CachedSummarizer) Summarize(ctx context.Context, text string, params Params) (string, error) {
	key := CacheKey(c.next.Name(), text, params)

	cached, found, err := c.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("[SummaryCache] Lookup failed",
			slog.String("error", err.Error()))
	} else if found {
		slog.Debug("[SummaryCache] Hit", slog.String("key", key))
		return cached, nil
	}

	out, err := c.next.Summarize(ctx, text, params)
	if err != nil {
		return "", err
	}

	if out != "" {
		if err := c.cache.Set(ctx, key, out); err != nil {
			slog.Warn("[SummaryCache] Store failed",
				slog.String("error", err.Error()))
		}
	}
	return out, nil
}

// CacheKey derives a stable key from the backend name, generation params and
// text.
func CacheKey(backend, text string, params Params) string {
	h := sha256.New()
	h.Write([]byte(backend))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(params.MaxLength) + "," + strconv.Itoa(params.MinLength) + "," +
		strconv.FormatBool(params.DoSample) + "," + strconv.FormatBool(params.Truncation)))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return CACHE_KEY_PREFIX + hex.EncodeToString(h.Sum(nil))
}
