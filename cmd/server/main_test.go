package main

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spacesedan/tweetmood/config"
	"github.com/spacesedan/tweetmood/internal/prediction"
)

func TestLoadSequenceClassifier_MissingRuntimeKeepsTokenizer(t *testing.T) {
	dir := t.TempDir()
	tokenizer := filepath.Join(dir, "tokenizer.json")
	vocab := `{"class_name":"Tokenizer","config":{"word_index":"{\"happy\": 1, \"sad\": 2}"}}`
	if err := os.WriteFile(tokenizer, []byte(vocab), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var cfg config.Config
	cfg.Classifier.Backend = config.CLASSIFIER_BACKEND_ONNX
	cfg.Classifier.OnnxLibraryPath = filepath.Join(dir, "libonnxruntime.so")
	cfg.Classifier.ModelPath = filepath.Join(dir, "emotion_model.onnx")
	cfg.Classifier.TokenizerPath = tokenizer

	var deps prediction.Dependencies
	var release cleanup
	loadClassifier(cfg, &deps, &release)
	release.run()

	if deps.Classifier != nil || deps.ModelLoaded {
		t.Fatalf("model should not load without the runtime: %+v", deps)
	}
	if !deps.TokenizerLoaded {
		t.Fatalf("TokenizerLoaded=false")
	}

	health := prediction.NewService(deps).Health()
	if health.Model != "failed" || health.Tokenizer != "loaded" {
		t.Fatalf("unexpected health: %+v", health)
	}
}

func TestLoadSummarizer_OpenAIWithoutKeyFallsBack(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var cfg config.Config
	cfg.Summarizer.Backend = config.SUMMARIZER_BACKEND_OPENAI
	cfg.Summarizer.OpenAIModel = "gpt-4o-mini"
	cfg.Summarizer.Timeout = time.Second
	cfg.Summarizer.HealthCheckInterval = time.Minute

	var deps prediction.Dependencies
	var release cleanup
	loadSummarizer(ctx, cfg, &deps, &release)
	release.run()

	health := prediction.NewService(deps).Health()
	if deps.Summarizer != nil || health.Summarizer != "fallback" || health.TransformersAvailable {
		t.Fatalf("unexpected health: %+v", health)
	}
}

func TestLoadSummarizer_NoneBackend(t *testing.T) {
	var cfg config.Config
	cfg.Summarizer.Backend = config.SUMMARIZER_BACKEND_NONE

	var deps prediction.Dependencies
	var release cleanup
	loadSummarizer(context.Background(), cfg, &deps, &release)

	if deps.Summarizer != nil || deps.TransformersAvailable {
		t.Fatalf("unexpected deps: %+v", deps)
	}
}

func TestLoadSummarizer_HuggingFaceCarriesBudget(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[{"summary_text":"ok"}]`))
	}))
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var cfg config.Config
	cfg.Summarizer.Backend = config.SUMMARIZER_BACKEND_HUGGINGFACE
	cfg.Summarizer.Endpoint = ts.URL
	cfg.Summarizer.Model = "facebook/bart-large-cnn"
	cfg.Summarizer.Timeout = 7 * time.Second
	cfg.Summarizer.HealthCheckInterval = time.Minute

	var deps prediction.Dependencies
	var release cleanup
	loadSummarizer(ctx, cfg, &deps, &release)
	release.run()

	if deps.Summarizer == nil || !deps.TransformersAvailable {
		t.Fatalf("summarizer not loaded: %+v", deps)
	}
	if deps.SummaryBudget != 7*time.Second {
		t.Fatalf("SummaryBudget=%s", deps.SummaryBudget)
	}
	if got := deps.Summarizer.Name(); got != "huggingface:facebook/bart-large-cnn" {
		t.Fatalf("Name=%q", got)
	}
}

func TestBootstrap_EnvWarningUsesConfiguredLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("LOG_LEVEL", "info")

	var buf bytes.Buffer
	if _, err := bootstrap("missing", &buf); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if !strings.Contains(buf.String(), "No .env file found") {
		t.Fatalf("env warning not written through the configured logger: %q", buf.String())
	}
}
