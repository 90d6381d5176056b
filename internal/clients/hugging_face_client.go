package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spacesedan/tweetmood/internal/models"
	"github.com/spacesedan/tweetmood/internal/summary"
)

const HF_BACKEND = "huggingface"

type HuggingFaceOptions struct {
	Endpoint       string
	Model          string
	APIToken       string
	Timeout        time.Duration
	MaxRetries     int
	InitialBackoff time.Duration
}

// HuggingFaceSummarizer calls a hosted summarization model, by default the
// Hugging Face inference API for facebook/bart-large-cnn.
type HuggingFaceSummarizer struct {
	Client         *http.Client
	endpoint       string
	model          string
	apiToken       string
	maxRetries     int
	initialBackoff time.Duration
}

func NewHuggingFaceSummarizer(opts HuggingFaceOptions) (*HuggingFaceSummarizer, error) {
	if opts.Endpoint == "" {
		return nil, errors.New("[HuggingFaceClient] summarizer endpoint is empty")
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = MAX_RETRIES
	}
	if opts.InitialBackoff <= 0 {
		opts.InitialBackoff = INITIAL_BACKOFF
	}

	slog.Info("[HuggingFaceClient] Initializing Client",
		slog.String("endpoint", opts.Endpoint),
		slog.String("model", opts.Model),
		slog.Duration("timeout", opts.Timeout))

	return &HuggingFaceSummarizer{
		Client:         &http.Client{Timeout: opts.Timeout},
		endpoint:       opts.Endpoint,
		model:          opts.Model,
		apiToken:       opts.APIToken,
		maxRetries:     opts.MaxRetries,
		initialBackoff: opts.InitialBackoff,
	}, nil
}

func (h *HuggingFaceSummarizer) Name() string {
	return HF_BACKEND + ":" + h.model
}

func (h *HuggingFaceSummarizer) Summarize(ctx context.Context, text string, params summary.Params) (string, error) {
	req := models.SummaryRequest{
		Inputs: text,
		Parameters: models.SummaryParameters{
			MaxLength: params.MaxLength,
			MinLength: params.MinLength,
			DoSample:  params.DoSample,
		},
	}
	if params.Truncation {
		req.Parameters.Truncation = "longest_first"
	}

	var result models.SummaryBatchResponse
	start := time.Now()
	if err := h.postJSON(ctx, h.endpoint, req, &result); err != nil {
		slog.Error("[HuggingFaceClient] Summary Request Failed",
			slog.Duration("elapsed", time.Since(start)))
		return "", err
	}

	if len(result) == 0 || strings.TrimSpace(result[0].SummaryText) == "" {
		return "", errors.New("summary response contained no summary_text")
	}

	slog.Info("[HuggingFaceClient] Summary request successful",
		slog.Duration("elapsed", time.Since(start)))
	return result[0].SummaryText, nil
}

// SummarizerHealthCheck reports whether the endpoint answers without a
// server error.
func (h *HuggingFaceSummarizer) SummarizerHealthCheck(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.endpoint, nil)
	if err != nil {
		return false
	}
	h.setHeaders(req)

	resp, err := h.Client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode < 500
}

func (h *HuggingFaceSummarizer) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)
	if h.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+h.apiToken)
	}
}

// DoWithRetry retries transport errors and 5xx responses with exponential
// backoff. The body is rebuilt from payload on every attempt.
func (h *HuggingFaceSummarizer) DoWithRetry(ctx context.Context, endpoint string, payload []byte) (*http.Response, error) {
	var resp *http.Response
	var err error
	backoff := h.initialBackoff

	for attempt := 0; attempt < h.maxRetries; attempt++ {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if reqErr != nil {
			return nil, fmt.Errorf("failed to build request: %w", reqErr)
		}
		h.setHeaders(req)

		resp, err = h.Client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		slog.Warn("[HuggingFaceClient] Request failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("error", errMsg(err, resp)))

		if resp != nil {
			resp.Body.Close()
		}

		if attempt == h.maxRetries-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, MAX_BACKOFF)
	}

	if err == nil {
		err = fmt.Errorf("status code %d", resp.StatusCode)
	}
	return nil, err
}

func (h *HuggingFaceSummarizer) postJSON(ctx context.Context, endpoint string, input interface{}, output interface{}) error {
	body, err := json.Marshal(input)
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed to marshal input",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to marshal input: %w", err)
	}

	resp, err := h.DoWithRetry(ctx, endpoint, body)
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed request after retries",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("request failed after retries: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed to read response",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr models.HuggingFaceError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("summarizer returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("summarizer returned %d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, output); err != nil {
		slog.Error("[HuggingFaceClient] Failed to unmarshal response",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
			getPreview(respBody),
			slog.Int("raw_response_length", len(respBody)))

		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}

func errMsg(err error, resp *http.Response) string {
	if err != nil {
		return err.Error()
	}
	if resp != nil {
		return fmt.Sprintf("status code %d", resp.StatusCode)
	}
	return "unknown error"
}
