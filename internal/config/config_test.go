package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	defaultBroker    = "localhost:9092"
	testInferenceURL = "http://inference:9000"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "hazard-reports", cfg.KafkaSourceTopic)
	assert.Equal(t, "scored-hazard-reports", cfg.KafkaSinkTopic)
	assert.Equal(t, "hazard-trust-engine", cfg.KafkaGroupID)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.BatchFlushInterval)
	assert.Zero(t, cfg.SimilarityThreshold)
	assert.False(t, cfg.InferenceEnabled)
	assert.Empty(t, cfg.InferenceURL)
	assert.Equal(t, 5*time.Second, cfg.InferenceTimeout)
	assert.Equal(t, 1000, cfg.InferenceCacheSize)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SOURCE_TOPIC", "custom-source")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("KAFKA_GROUP_ID", "custom-group")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("BATCH_SIZE", "100")
	t.Setenv("BATCH_FLUSH_INTERVAL", "1s")
	t.Setenv("SIMILARITY_THRESHOLD", "0.9")
	t.Setenv("INFERENCE_URL", testInferenceURL)
	t.Setenv("INFERENCE_TIMEOUT", "10s")
	t.Setenv("INFERENCE_CACHE_SIZE", "500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-source", cfg.KafkaSourceTopic)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.Equal(t, "custom-group", cfg.KafkaGroupID)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 1*time.Second, cfg.BatchFlushInterval)
	assert.Equal(t, 0.9, cfg.SimilarityThreshold)
	assert.True(t, cfg.InferenceEnabled)
	assert.Equal(t, testInferenceURL, cfg.InferenceURL)
	assert.Equal(t, 10*time.Second, cfg.InferenceTimeout)
	assert.Equal(t, 500, cfg.InferenceCacheSize)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidBatchSize(t *testing.T) {
	t.Setenv("BATCH_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_SIZE")
}

func TestLoad_InvalidSimilarityThreshold(t *testing.T) {
	for _, v := range []string{"bad", "0", "1", "1.5", "-0.2"} {
		t.Setenv("SIMILARITY_THRESHOLD", v)
		_, err := Load()
		require.Error(t, err, "value %q", v)
		assert.Contains(t, err.Error(), "SIMILARITY_THRESHOLD")
	}
}

func TestLoad_InvalidInferenceTimeout(t *testing.T) {
	t.Setenv("INFERENCE_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INFERENCE_TIMEOUT")
}

func TestLoad_InferenceEnabledWithoutURL(t *testing.T) {
	t.Setenv("INFERENCE_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INFERENCE_URL")
}

func TestLoad_InferenceURLImpliesEnabled(t *testing.T) {
	t.Setenv("INFERENCE_URL", testInferenceURL)
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.InferenceEnabled)
}

func TestLoad_InferenceExplicitlyDisabled(t *testing.T) {
	t.Setenv("INFERENCE_URL", testInferenceURL)
	t.Setenv("INFERENCE_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.InferenceEnabled)
}
