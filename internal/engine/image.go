package engine

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/couchcryptid/hazard-trust-engine/internal/domain"
)

// ImageScorer scores a single image against the report description. The
// alignment score measures how well the image matches the described hazard,
// the quality score its visual usability; both are in [0,1].
//
// HeuristicScorer is the built-in implementation; the inference adapter
// provides a model-backed one behind the same contract.
type ImageScorer interface {
	ScoreImage(ctx context.Context, img domain.ImageData, description string) (alignment, quality float64, err error)
}

// ExtractImageSummary scores every attached image and aggregates the
// results. A report without images yields an explicit zero-count summary
// rather than invoking the per-image path.
func ExtractImageSummary(ctx context.Context, images []domain.ImageData, description string, scorer ImageScorer) (domain.ImageSummary, error) {
	if len(images) == 0 {
		return domain.ImageSummary{}, nil
	}

	summary := domain.ImageSummary{
		Count:           len(images),
		AlignmentScores: make([]float64, 0, len(images)),
		QualityScores:   make([]float64, 0, len(images)),
	}

	for i, img := range images {
		alignment, quality, err := scorer.ScoreImage(ctx, img, description)
		if err != nil {
			return domain.ImageSummary{}, fmt.Errorf("%w: score image %d: %w", ErrFeatureExtraction, i, err)
		}
		summary.AlignmentScores = append(summary.AlignmentScores, alignment)
		summary.QualityScores = append(summary.QualityScores, quality)
	}

	summary.MeanAlignment = mean(summary.AlignmentScores)
	summary.MeanQuality = mean(summary.QualityScores)
	return summary, nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// HeuristicScorer derives per-image scores from a content digest. The
// scores are stable for identical payloads and bounded to plausible bands
// (alignment 0.70–0.99, quality 0.50–0.99). It stands in for genuine
// image-text alignment and sharpness scoring, which live behind the
// ImageScorer seam.
type HeuristicScorer struct{}

func (HeuristicScorer) ScoreImage(_ context.Context, img domain.ImageData, _ string) (float64, float64, error) {
	if len(img.Data) == 0 {
		return 0, 0, fmt.Errorf("%w: empty image payload %q", ErrFeatureExtraction, img.Filename)
	}

	digest := sha256.Sum256(img.Data)
	alignment := 0.70 + float64(digest[0]%30)/100
	quality := 0.50 + float64(digest[1]%50)/100
	return alignment, quality, nil
}
