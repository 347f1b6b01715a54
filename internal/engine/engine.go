package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/hazard-trust-engine/internal/domain"
)

// Model version strings recorded on every trust score.
const (
	HeuristicModelVersion = "heuristic-v1.0.0"
	InferenceModelVersion = "inference-v1.0.0"
)

// ProcessingVersion tags processed reports on the sink topic.
const ProcessingVersion = "v1.0.0"

// CorroborationSource looks up external signals referencing the same event
// as a report. Implemented elsewhere; only the returned count feeds
// cross-verification.
type CorroborationSource interface {
	FindRelated(ctx context.Context, report domain.Report) ([]domain.SocialPost, error)
}

// Engine is the feature-fusion duplicate-detection and trust-scoring core.
// The variant (heuristic vs model-backed) is an explicit construction-time
// choice of collaborators, not a dispatch mechanism.
type Engine struct {
	registry *Registry
	scorer   ImageScorer
	version  string
}

// Options configures an Engine. Zero values select the heuristic variant
// with the default similarity threshold.
type Options struct {
	SimilarityThreshold float64
	ImageScorer         ImageScorer
	ModelVersion        string
}

// New creates an Engine with an empty registry.
func New(opts Options) *Engine {
	scorer := opts.ImageScorer
	if scorer == nil {
		scorer = HeuristicScorer{}
	}
	version := opts.ModelVersion
	if version == "" {
		version = HeuristicModelVersion
	}
	return &Engine{
		registry: NewRegistry(opts.SimilarityThreshold),
		scorer:   scorer,
		version:  version,
	}
}

// Extract runs the text, image, and hazard extractors concurrently on one
// report. Pure with respect to shared state; a failure in any extractor
// cancels the others and surfaces as a feature-extraction error.
func (e *Engine) Extract(ctx context.Context, report domain.Report) (domain.Features, error) {
	var features domain.Features

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := ExtractTextFeatures(report.Description, report.Language)
		if err != nil {
			return fmt.Errorf("text features for %s: %w", report.ID, err)
		}
		features.Text = text
		return nil
	})
	g.Go(func() error {
		images, err := ExtractImageSummary(gctx, report.Images, report.Description, e.scorer)
		if err != nil {
			return fmt.Errorf("image summary for %s: %w", report.ID, err)
		}
		features.Images = images
		return nil
	})
	g.Go(func() error {
		features.Hazard = ClassifyHazard(report.Description)
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.Features{}, err
	}
	return features, nil
}

// DetectDuplicate matches the embedding against the registry and records
// it. The only Engine operation touching shared state; at most one call per
// report ID.
func (e *Engine) DetectDuplicate(report domain.Report, embedding domain.CompositeEmbedding) (domain.DuplicateResult, error) {
	return e.registry.DetectDuplicate(report.ID, embedding)
}

// Score computes the trust score for a report with this engine's model
// version. Pure given its inputs.
func (e *Engine) Score(report domain.Report, features domain.Features, dup domain.DuplicateResult, posts []domain.SocialPost) domain.TrustScore {
	return Score(report, features, dup, posts, e.version)
}

// DefaultScore is the failure-policy trust score for this engine's model
// version (see DefaultTrustScore).
func (e *Engine) DefaultScore() domain.TrustScore {
	return DefaultTrustScore(e.version)
}

// RegistrySize reports how many embeddings have been recorded.
func (e *Engine) RegistrySize() int {
	return e.registry.Size()
}

// Process runs the full per-report flow: extraction, embedding fusion,
// duplicate detection, trust scoring, priority, and explanation. Extraction
// and registry errors propagate; the caller decides between retrying,
// skipping, and falling back to DefaultScore.
func (e *Engine) Process(ctx context.Context, report domain.Report, posts []domain.SocialPost) (domain.ProcessedReport, error) {
	features, err := e.Extract(ctx, report)
	if err != nil {
		return domain.ProcessedReport{}, err
	}

	embedding := BuildCompositeEmbedding(report, features)
	dup, err := e.DetectDuplicate(report, embedding)
	if err != nil {
		return domain.ProcessedReport{}, err
	}

	score := e.Score(report, features, dup, posts)

	return domain.ProcessedReport{
		Report:             report,
		TrustScore:         score,
		Priority:           ClassifyPriority(score, report.HazardType),
		Explanation:        Explain(score, features),
		DetectedHazard:     features.Hazard.Predicted,
		SentimentScore:     features.Text.Sentiment.Positive - features.Text.Sentiment.Negative,
		LanguageConfidence: features.Text.LanguageConfidence,
		SimilarReports:     dup.SimilarReports,
		IsDuplicate:        dup.IsDuplicate,
		ClusterID:          dup.ClusterID,
		ProcessedAt:        domain.Now(),
		ProcessingVersion:  ProcessingVersion,
	}, nil
}
