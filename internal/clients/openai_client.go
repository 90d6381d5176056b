package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/spacesedan/tweetmood/internal/summary"
)

const OPENAI_BACKEND = "openai"

const summarizePrompt = `Summarize the user's text in plain prose, as a news editor would.
Do not add commentary, headings or quotation marks. Keep the summary between %d and %d tokens.`

type OpenAIOptions struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	// BaseURL overrides the API host; used for compatible gateways and tests.
	BaseURL string
}

type OpenAISummarizer struct {
	Client *openai.Client
	model  string
}

func NewOpenAISummarizer(opts OpenAIOptions) (*OpenAISummarizer, error) {
	if opts.APIKey == "" {
		return nil, errors.New("[OpenAIClient] Missing OPENAI_API_KEY in environment variables")
	}
	if opts.Model == "" {
		return nil, errors.New("[OpenAIClient] model is empty")
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: opts.Timeout}),
		option.WithMaxRetries(MAX_RETRIES),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	client := openai.NewClient(reqOpts...)
	slog.Info("[OpenAIClient] OpenAI client initialized",
		slog.String("model", opts.Model),
		slog.Duration("timeout", opts.Timeout))

	return &OpenAISummarizer{Client: &client, model: opts.Model}, nil
}

func (o *OpenAISummarizer) Name() string {
	return OPENAI_BACKEND + ":" + o.model
}

func (o *OpenAISummarizer) Summarize(ctx context.Context, text string, params summary.Params) (string, error) {
	input := text
	if params.Truncation {
		input = truncateRunes(input, OPENAI_MAX_INPUT_CHARS)
	}

	req := responses.ResponseNewParams{
		Model:           o.model,
		MaxOutputTokens: openai.Int(int64(params.MaxLength)),
		Instructions:    openai.String(fmt.Sprintf(summarizePrompt, params.MinLength, params.MaxLength)),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(input, responses.EasyInputMessageRoleUser),
			},
		},
	}
	if !params.DoSample {
		req.Temperature = openai.Float(0)
	}

	start := time.Now()
	resp, err := o.Client.Responses.New(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai summarize: %w", err)
	}

	out := strings.TrimSpace(resp.OutputText())
	if out == "" {
		return "", errors.New("openai response contained no text")
	}

	slog.Info("[OpenAIClient] Summary request successful",
		slog.Duration("elapsed", time.Since(start)))
	return out, nil
}

// SummarizerHealthCheck reports whether the configured model is reachable.
func (o *OpenAISummarizer) SummarizerHealthCheck(ctx context.Context) bool {
	_, err := o.Client.Models.Get(ctx, o.model)
	return err == nil
}

// OPENAI_MAX_INPUT_CHARS bounds the prompt when truncation is requested,
// roughly the 1024-token window of the BART summarizer.
const OPENAI_MAX_INPUT_CHARS = 4096

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
