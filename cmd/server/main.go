package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spacesedan/tweetmood/config"
	"github.com/spacesedan/tweetmood/internal/logging"
	"github.com/spacesedan/tweetmood/internal/prediction"
	"github.com/spacesedan/tweetmood/internal/server"
)

func main() {
	// inference is CPU only
	os.Setenv("CUDA_VISIBLE_DEVICES", "-1")

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	cfg, err := bootstrap(env, os.Stdout)
	if err != nil {
		slog.Error("[Main] Invalid configuration",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var release cleanup
	defer release.run()

	var deps prediction.Dependencies
	loadClassifier(cfg, &deps, &release)
	loadSummarizer(ctx, cfg, &deps, &release)

	service := prediction.NewService(deps)
	health := service.Health()
	slog.Info("[Main] Startup complete",
		slog.String("model", health.Model),
		slog.String("tokenizer", health.Tokenizer),
		slog.String("summarizer", health.Summarizer),
		slog.Bool("transformers_available", health.TransformersAvailable))

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      server.NewRouter(server.NewHandler(service, cfg.Server.StaticDir)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("[Main] Listening", slog.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		slog.Info("[Main] Shutting down")
	case err := <-errCh:
		if err != nil {
			slog.Error("[Main] Server failed",
				slog.String("error", err.Error()))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Graceful shutdown failed",
			slog.String("error", err.Error()))
	}
}

// bootstrap applies the env file, reads the configuration and installs the
// tint logger before anything is logged, so the env file warning uses it too.
func bootstrap(env string, out io.Writer) (config.Config, error) {
	envErr := config.LoadEnv(env)

	cfg, err := config.Load()
	logging.InitLogger(out, cfg.LogLevel)
	if envErr != nil {
		slog.Warn("[Config] No .env file found, using OS environment",
			slog.String("error", envErr.Error()))
	}
	return cfg, err
}
