package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Duplicate detection.
	SimilarityThreshold float64

	// Model inference configuration (the model-backed image scorer).
	InferenceURL       string
	InferenceEnabled   bool
	InferenceTimeout   time.Duration
	InferenceCacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	threshold, err := parseSimilarityThreshold()
	if err != nil {
		return nil, err
	}

	inferenceTimeoutStr := sharedcfg.EnvOrDefault("INFERENCE_TIMEOUT", "5s")
	inferenceTimeout, err2 := time.ParseDuration(inferenceTimeoutStr)
	if err2 != nil || inferenceTimeout <= 0 {
		return nil, errors.New("invalid INFERENCE_TIMEOUT")
	}

	inferenceURL := os.Getenv("INFERENCE_URL")
	inferenceEnabled := inferenceURL != ""
	if v := os.Getenv("INFERENCE_ENABLED"); v != "" {
		inferenceEnabled = v == "true"
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "hazard-reports"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "scored-hazard-reports"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "hazard-trust-engine"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		SimilarityThreshold: threshold,

		InferenceURL:       inferenceURL,
		InferenceEnabled:   inferenceEnabled,
		InferenceTimeout:   inferenceTimeout,
		InferenceCacheSize: parseInferenceCacheSize(),
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.InferenceEnabled && cfg.InferenceURL == "" {
		return nil, errors.New("INFERENCE_ENABLED is true but INFERENCE_URL is not set")
	}

	return cfg, nil
}

// parseSimilarityThreshold reads SIMILARITY_THRESHOLD; 0 defers to the
// engine's default. Values must stay inside (0,1): a threshold of 1 or more
// can never match and would silently disable duplicate detection.
func parseSimilarityThreshold() (float64, error) {
	s := os.Getenv("SIMILARITY_THRESHOLD")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 || v >= 1 {
		return 0, errors.New("invalid SIMILARITY_THRESHOLD")
	}
	return v, nil
}

func parseInferenceCacheSize() int {
	if s := os.Getenv("INFERENCE_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
