package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/hazard-trust-engine/internal/adapter/http"
	"github.com/couchcryptid/hazard-trust-engine/internal/adapter/inference"
	kafkaadapter "github.com/couchcryptid/hazard-trust-engine/internal/adapter/kafka"
	"github.com/couchcryptid/hazard-trust-engine/internal/config"
	"github.com/couchcryptid/hazard-trust-engine/internal/engine"
	"github.com/couchcryptid/hazard-trust-engine/internal/observability"
	"github.com/couchcryptid/hazard-trust-engine/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Select the image scorer (feature-flagged via INFERENCE_ENABLED / INFERENCE_URL).
	var scorer engine.ImageScorer
	modelVersion := engine.HeuristicModelVersion
	if cfg.InferenceEnabled {
		client := inference.NewClient(cfg.InferenceURL, cfg.InferenceTimeout, metrics, logger)
		scorer = inference.NewCachedScorer(client, cfg.InferenceCacheSize, metrics)
		modelVersion = engine.InferenceModelVersion
		metrics.InferenceEnabled.Set(1)
		logger.Info("model-backed image scoring enabled",
			"url", cfg.InferenceURL, "cache_size", cfg.InferenceCacheSize, "timeout", cfg.InferenceTimeout)
	} else {
		logger.Info("heuristic image scoring enabled")
	}

	eng := engine.New(engine.Options{
		SimilarityThreshold: cfg.SimilarityThreshold,
		ImageScorer:         scorer,
		ModelVersion:        modelVersion,
	})

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	processor := pipeline.NewProcessor(eng, nil, logger, metrics)

	p := pipeline.New(reader, processor, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, processor, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start scoring pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
