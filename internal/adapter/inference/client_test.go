package inference

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/hazard-trust-engine/internal/domain"
	"github.com/couchcryptid/hazard-trust-engine/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func testClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		metrics:    testMetrics(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func testImage() domain.ImageData {
	return domain.ImageData{Data: []byte("jpeg-bytes"), ContentType: "image/jpeg", Filename: "wave.jpg"}
}

func TestClient_ScoreImage_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/score-image", r.URL.Path)
		assert.Equal(t, contentTypeJSON, r.Header.Get(headerContentType))

		var req scoreRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Image)
		assert.Equal(t, "massive waves at the beach", req.Description)

		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(scoreResponse{Alignment: 0.82, Quality: 0.74}))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	alignment, quality, err := c.ScoreImage(context.Background(), testImage(), "massive waves at the beach")
	require.NoError(t, err)

	assert.Equal(t, 0.82, alignment)
	assert.Equal(t, 0.74, quality)
}

func TestClient_ScoreImage_ClampsOutOfRangeScores(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(scoreResponse{Alignment: 1.4, Quality: -0.2}))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	alignment, quality, err := c.ScoreImage(context.Background(), testImage(), "waves")
	require.NoError(t, err)

	assert.Equal(t, 1.0, alignment)
	assert.Equal(t, 0.0, quality)
}

func TestClient_ScoreImage_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, _, err := c.ScoreImage(context.Background(), testImage(), "waves")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestClient_ScoreImage_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, err := w.Write([]byte("{not json"))
		require.NoError(t, err)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, _, err := c.ScoreImage(context.Background(), testImage(), "waves")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_ScoreImage_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := testClient(srv.URL)
	_, _, err := c.ScoreImage(ctx, testImage(), "waves")
	require.Error(t, err)
}
