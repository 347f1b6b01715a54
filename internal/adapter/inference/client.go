// Package inference provides the model-backed image scorer: an HTTP client
// for an external inference service that performs real image-text alignment
// and quality assessment, cached in memory. It satisfies engine.ImageScorer,
// so the engine is indifferent to which variant is wired in.
package inference

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/hazard-trust-engine/internal/domain"
	"github.com/couchcryptid/hazard-trust-engine/internal/observability"
)

// Client calls the inference service's image scoring endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an inference API client.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// ScoreImage submits one image with its report description and returns the
// model's alignment and quality scores.
func (c *Client) ScoreImage(ctx context.Context, img domain.ImageData, description string) (float64, float64, error) {
	reqBody := scoreRequest{
		Image:       base64.StdEncoding.EncodeToString(img.Data),
		ContentType: img.ContentType,
		Description: description,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return 0, 0, fmt.Errorf("encode score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/score-image", bytes.NewReader(payload))
	if err != nil {
		return 0, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.InferenceRequests.WithLabelValues("error").Inc()
		return 0, 0, fmt.Errorf("score image request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.InferenceRequests.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return 0, 0, fmt.Errorf("inference API error: status %d: %s", resp.StatusCode, body)
	}

	var scoreResp scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&scoreResp); err != nil {
		c.metrics.InferenceRequests.WithLabelValues("error").Inc()
		return 0, 0, fmt.Errorf("decode response: %w", err)
	}

	c.metrics.InferenceRequests.WithLabelValues("success").Inc()
	return clampUnit(scoreResp.Alignment), clampUnit(scoreResp.Quality), nil
}

// clampUnit guards against a misbehaving model returning out-of-range
// scores; everything downstream assumes [0,1].
func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Inference API wire types.

type scoreRequest struct {
	Image       string `json:"image"`
	ContentType string `json:"content_type,omitempty"`
	Description string `json:"description"`
}

type scoreResponse struct {
	Alignment float64 `json:"alignment"`
	Quality   float64 `json:"quality"`
}
