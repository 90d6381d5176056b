package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	CLASSIFIER_BACKEND_ONNX  = "onnx"
	CLASSIFIER_BACKEND_HUGOT = "hugot"

	SUMMARIZER_BACKEND_HUGGINGFACE = "huggingface"
	SUMMARIZER_BACKEND_OPENAI      = "openai"
	SUMMARIZER_BACKEND_NONE        = "none"
)

type Config struct {
	Env      string
	LogLevel string

	Server struct {
		Address         string
		ReadTimeout     time.Duration
		WriteTimeout    time.Duration
		IdleTimeout     time.Duration
		ShutdownTimeout time.Duration
		StaticDir       string
	}

	Classifier struct {
		Backend         string
		ModelPath       string
		HugotModelPath  string
		HugotModelName  string
		OnnxLibraryPath string
		TokenizerPath   string
	}

	Summarizer struct {
		Backend             string
		Model               string
		Endpoint            string
		APIToken            string
		Timeout             time.Duration
		OpenAIAPIKey        string
		OpenAIModel         string
		HealthCheckInterval time.Duration
	}

	Valkey struct {
		Address  string
		Password string
		TLS      bool
		TTL      time.Duration
	}
}

// Load reads the service configuration from the environment. Call LoadEnv
// first if an env file should be applied.
func Load() (Config, error) {
	var cfg Config

	cfg.Env = getEnvOrDefault("APP_ENV", "dev")
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")

	cfg.Server.Address = getEnvOrDefault("SERVER_ADDRESS", ":8000")
	cfg.Server.ReadTimeout = getDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second)
	cfg.Server.WriteTimeout = getDurationOrDefault("SERVER_WRITE_TIMEOUT", 120*time.Second)
	cfg.Server.IdleTimeout = getDurationOrDefault("SERVER_IDLE_TIMEOUT", 60*time.Second)
	cfg.Server.ShutdownTimeout = getDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	cfg.Server.StaticDir = getEnvOrDefault("STATIC_DIR", "static")

	cfg.Classifier.Backend = strings.ToLower(getEnvOrDefault("CLASSIFIER_BACKEND", CLASSIFIER_BACKEND_ONNX))
	cfg.Classifier.ModelPath = getEnvOrDefault("CLASSIFIER_MODEL_PATH", "models/emotion_model.onnx")
	cfg.Classifier.HugotModelPath = getEnvOrDefault("HUGOT_MODEL_PATH", "models/distilbert-base-uncased-emotion")
	cfg.Classifier.HugotModelName = os.Getenv("HUGOT_MODEL_NAME")
	cfg.Classifier.OnnxLibraryPath = getEnvOrDefault("ONNXRUNTIME_LIB_PATH", "/usr/lib/onnxruntime.so")
	cfg.Classifier.TokenizerPath = getEnvOrDefault("TOKENIZER_PATH", "models/tokenizer.json")

	cfg.Summarizer.Backend = strings.ToLower(getEnvOrDefault("SUMMARIZER_BACKEND", SUMMARIZER_BACKEND_HUGGINGFACE))
	cfg.Summarizer.Model = getEnvOrDefault("SUMMARIZER_MODEL", "facebook/bart-large-cnn")
	cfg.Summarizer.Endpoint = getEnvOrDefault("HF_SUMMARIZER_ENDPOINT",
		"https://api-inference.huggingface.co/models/"+cfg.Summarizer.Model)
	cfg.Summarizer.APIToken = os.Getenv("HF_API_TOKEN")
	cfg.Summarizer.Timeout = getDurationOrDefault("SUMMARIZER_TIMEOUT", 30*time.Second)
	cfg.Summarizer.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Summarizer.OpenAIModel = getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini")
	cfg.Summarizer.HealthCheckInterval = getDurationOrDefault("SUMMARIZER_HEALTHCHECK_INTERVAL", 15*time.Second)

	cfg.Valkey.Address = os.Getenv("VALKEY_INIT_ADDRESS")
	cfg.Valkey.Password = os.Getenv("VALKEY_PASSWORD")
	cfg.Valkey.TLS = getBoolOrDefault("VALKEY_TLS", false)
	cfg.Valkey.TTL = getDurationOrDefault("SUMMARY_CACHE_TTL", 24*time.Hour)

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Classifier.Backend {
	case CLASSIFIER_BACKEND_ONNX, CLASSIFIER_BACKEND_HUGOT:
	default:
		return fmt.Errorf("unknown CLASSIFIER_BACKEND %q", c.Classifier.Backend)
	}

	switch c.Summarizer.Backend {
	case SUMMARIZER_BACKEND_HUGGINGFACE, SUMMARIZER_BACKEND_OPENAI, SUMMARIZER_BACKEND_NONE:
	default:
		return fmt.Errorf("unknown SUMMARIZER_BACKEND %q", c.Summarizer.Backend)
	}

	if c.Server.Address == "" {
		return fmt.Errorf("SERVER_ADDRESS must not be empty")
	}

	durations := map[string]time.Duration{
		"SERVER_READ_TIMEOUT":             c.Server.ReadTimeout,
		"SERVER_WRITE_TIMEOUT":            c.Server.WriteTimeout,
		"SERVER_IDLE_TIMEOUT":             c.Server.IdleTimeout,
		"SHUTDOWN_TIMEOUT":                c.Server.ShutdownTimeout,
		"SUMMARIZER_TIMEOUT":              c.Summarizer.Timeout,
		"SUMMARIZER_HEALTHCHECK_INTERVAL": c.Summarizer.HealthCheckInterval,
		"SUMMARY_CACHE_TTL":               c.Valkey.TTL,
	}
	for name, d := range durations {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}

	// a summary that outlives the write deadline leaves the client with a
	// dropped connection instead of the fallback
	if c.Summarizer.Timeout*2 > c.Server.WriteTimeout {
		return fmt.Errorf("SUMMARIZER_TIMEOUT (%s) must be at most half of SERVER_WRITE_TIMEOUT (%s)",
			c.Summarizer.Timeout, c.Server.WriteTimeout)
	}

	if c.Valkey.TTL < time.Second {
		return fmt.Errorf("SUMMARY_CACHE_TTL must be at least 1s, got %s", c.Valkey.TTL)
	}

	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getDurationOrDefault(key string, fallback time.Duration) time.Duration {
	v := getEnvOrDefault(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getBoolOrDefault(key string, fallback bool) bool {
	v := getEnvOrDefault(key, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
