package main

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/spacesedan/tweetmood/config"
	"github.com/spacesedan/tweetmood/internal/clients"
	"github.com/spacesedan/tweetmood/internal/monitoring"
	"github.com/spacesedan/tweetmood/internal/prediction"
	"github.com/spacesedan/tweetmood/internal/preprocess"
	"github.com/spacesedan/tweetmood/internal/summary"
)

// cleanup collects release functions for everything loaded at startup.
type cleanup []func()

func (c *cleanup) add(fn func()) {
	*c = append(*c, fn)
}

func (c cleanup) run() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

func loadClassifier(cfg config.Config, deps *prediction.Dependencies, release *cleanup) {
	switch cfg.Classifier.Backend {
	case config.CLASSIFIER_BACKEND_HUGOT:
		loadHugotClassifier(cfg, deps, release)
	default:
		loadSequenceClassifier(cfg, deps, release)
	}
}

func loadSequenceClassifier(cfg config.Config, deps *prediction.Dependencies, release *cleanup) {
	var classifier prediction.SequenceClassifier

	slog.Info("[Main] Loading emotion classification model...",
		slog.String("path", cfg.Classifier.ModelPath))
	if err := clients.InitONNXRuntime(cfg.Classifier.OnnxLibraryPath); err != nil {
		slog.Warn("[Main] Error loading model",
			slog.String("error", err.Error()))
	} else {
		release.add(clients.DestroyONNXRuntime)
		model, err := clients.NewONNXClassifier(cfg.Classifier.ModelPath)
		if err != nil {
			slog.Warn("[Main] Error loading model",
				slog.String("error", err.Error()))
		} else {
			release.add(model.Destroy)
			classifier.Model = model
			deps.ModelLoaded = true
			slog.Info("[Main] Model loaded successfully")
		}
	}

	slog.Info("[Main] Loading tokenizer...",
		slog.String("path", cfg.Classifier.TokenizerPath))
	vocab, err := preprocess.LoadVocabulary(cfg.Classifier.TokenizerPath)
	if err != nil {
		slog.Warn("[Main] Error loading tokenizer",
			slog.String("error", err.Error()))
	} else {
		classifier.Tokenizer = vocab
		deps.TokenizerLoaded = true
		slog.Info("[Main] Tokenizer loaded successfully",
			slog.Int("vocabulary_size", vocab.Size()))
	}

	if deps.ModelLoaded && deps.TokenizerLoaded {
		deps.Classifier = classifier
	}
}

// The hugot pipeline bundles the model with its own tokenizer, so both load
// statuses follow the pipeline.
func loadHugotClassifier(cfg config.Config, deps *prediction.Dependencies, release *cleanup) {
	slog.Info("[Main] Loading emotion classification model...",
		slog.String("path", cfg.Classifier.HugotModelPath))

	classifier, err := clients.NewHugotClassifier(cfg.Classifier.HugotModelPath, cfg.Classifier.HugotModelName,
		cfg.Classifier.OnnxLibraryPath)
	if err != nil {
		slog.Warn("[Main] Error loading model",
			slog.String("error", err.Error()))
		return
	}
	release.add(classifier.Destroy)

	deps.Classifier = classifier
	deps.ModelLoaded = true
	deps.TokenizerLoaded = true
	slog.Info("[Main] Model and tokenizer loaded successfully")
}

type remoteSummarizer interface {
	summary.Summarizer
	monitoring.SummarizerHealthChecker
}

func loadSummarizer(ctx context.Context, cfg config.Config, deps *prediction.Dependencies, release *cleanup) {
	if cfg.Summarizer.Backend == config.SUMMARIZER_BACKEND_NONE {
		slog.Info("[Main] Summarizer disabled, using fallback summarization")
		return
	}

	slog.Info("[Main] Loading summarization model...",
		slog.String("backend", cfg.Summarizer.Backend))

	var (
		backend remoteSummarizer
		err     error
	)
	switch cfg.Summarizer.Backend {
	case config.SUMMARIZER_BACKEND_OPENAI:
		backend, err = clients.NewOpenAISummarizer(clients.OpenAIOptions{
			APIKey:  cfg.Summarizer.OpenAIAPIKey,
			Model:   cfg.Summarizer.OpenAIModel,
			Timeout: cfg.Summarizer.Timeout,
		})
	default:
		backend, err = clients.NewHuggingFaceSummarizer(clients.HuggingFaceOptions{
			Endpoint: cfg.Summarizer.Endpoint,
			Model:    cfg.Summarizer.Model,
			APIToken: cfg.Summarizer.APIToken,
			Timeout:  cfg.Summarizer.Timeout,
		})
	}
	if err != nil {
		slog.Warn("[Main] Could not load summarizer. Using fallback summarization",
			slog.String("error", err.Error()))
		return
	}

	healthy := &atomic.Bool{}
	healthy.Store(true)
	go monitoring.MonitorSummarizerHealth(ctx, backend, cfg.Summarizer.HealthCheckInterval, healthy)

	var s summary.Summarizer = summary.NewHealthGatedSummarizer(backend, healthy)

	if cfg.Valkey.Address != "" {
		cache, err := clients.NewValkeyClient(clients.ValkeyOptions{
			Address:  cfg.Valkey.Address,
			Password: cfg.Valkey.Password,
			TLS:      cfg.Valkey.TLS,
			TTL:      cfg.Valkey.TTL,
		})
		if err != nil {
			slog.Warn("[Main] Summary cache unavailable, continuing without it",
				slog.String("error", err.Error()))
		} else {
			release.add(cache.Close)
			s = summary.NewCachedSummarizer(s, cache)
		}
	}

	deps.Summarizer = s
	deps.TransformersAvailable = true
	deps.SummaryBudget = cfg.Summarizer.Timeout
	slog.Info("[Main] Summarization model loaded successfully",
		slog.String("summarizer", backend.Name()))
}
