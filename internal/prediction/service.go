package prediction

import (
	"context"
	"log/slog"
	"time"

	"github.com/spacesedan/tweetmood/internal/emotion"
	"github.com/spacesedan/tweetmood/internal/models"
	"github.com/spacesedan/tweetmood/internal/narrative"
	"github.com/spacesedan/tweetmood/internal/summary"
)

const (
	STATUS_LOADED   = "loaded"
	STATUS_FAILED   = "failed"
	STATUS_FALLBACK = "fallback"
	STATUS_HEALTHY  = "healthy"
)

// Dependencies is everything loaded once at startup. It is never mutated
// after NewService.
type Dependencies struct {
	// Classifier is nil unless both the model and its tokenizer loaded.
	Classifier      Classifier
	ModelLoaded     bool
	TokenizerLoaded bool

	// Summarizer is nil when no AI summarizer is available.
	Summarizer            summary.Summarizer
	TransformersAvailable bool
	// SummaryBudget bounds one summarization, retries included. Zero means
	// only the request context applies.
	SummaryBudget time.Duration
}

type Service struct {
	deps Dependencies
}

func NewService(deps Dependencies) *Service {
	if deps.Classifier != nil && (!deps.ModelLoaded || !deps.TokenizerLoaded) {
		deps.Classifier = nil
	}
	return &Service{deps: deps}
}

func (s *Service) Ready() bool {
	return s.deps.Classifier != nil
}

// Predict classifies text and builds its narrative summary. It returns
// ErrModelNotReady or an *InferenceError; summarization problems never
// surface here.
func (s *Service) Predict(ctx context.Context, text string) (models.PredictionResponse, error) {
	if !s.Ready() {
		return models.PredictionResponse{}, ErrModelNotReady
	}

	probs, err := s.deps.Classifier.Classify(ctx, text)
	if err != nil {
		return models.PredictionResponse{}, &InferenceError{Err: err}
	}

	pred, err := emotion.FromProbabilities(probs)
	if err != nil {
		return models.PredictionResponse{}, &InferenceError{Err: err}
	}

	res := summary.Attempt(ctx, s.deps.Summarizer, text, s.deps.SummaryBudget)
	report := narrative.Compose(pred.Label, text, res)

	slog.Debug("[PredictionService] Prediction complete",
		slog.String("emotion", pred.Label.String()),
		slog.Float64("confidence", pred.Confidence),
		slog.Bool("ai_summary", res.OK))

	return models.PredictionResponse{
		Emotion:      pred.Label.String(),
		Confidence:   pred.Confidence,
		Summary:      report,
		OriginalText: text,
	}, nil
}

// Health reports how each dependency loaded. It reads only startup state.
func (s *Service) Health() models.HealthResponse {
	return models.HealthResponse{
		Status:                STATUS_HEALTHY,
		Model:                 loadStatus(s.deps.ModelLoaded, STATUS_FAILED),
		Tokenizer:             loadStatus(s.deps.TokenizerLoaded, STATUS_FAILED),
		Summarizer:            loadStatus(s.deps.Summarizer != nil, STATUS_FALLBACK),
		TransformersAvailable: s.deps.TransformersAvailable,
	}
}

func loadStatus(loaded bool, otherwise string) string {
	if loaded {
		return STATUS_LOADED
	}
	return otherwise
}
