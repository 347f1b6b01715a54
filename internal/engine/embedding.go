package engine

import (
	"math"

	"github.com/couchcryptid/hazard-trust-engine/internal/domain"
)

// Composite embedding layout: text terms, then normalized lat/lon, then a
// one-hot hazard segment, then the image digest (mean alignment, count/10).
// EmbeddingDim is fixed for the lifetime of a registry.
const (
	locationDims = 2
	imageDims    = 2
)

// EmbeddingDim is the dimensionality of every composite embedding.
var EmbeddingDim = len(vocabulary) + locationDims + len(domain.HazardCatalog()) + imageDims

// BuildCompositeEmbedding fuses the extracted features and report metadata
// into the fixed-length vector used for duplicate comparison.
func BuildCompositeEmbedding(report domain.Report, features domain.Features) domain.CompositeEmbedding {
	embedding := make(domain.CompositeEmbedding, 0, EmbeddingDim)

	embedding = append(embedding, features.Text.Embedding...)

	embedding = append(embedding,
		report.Location.Latitude/90.0,
		report.Location.Longitude/180.0,
	)

	for _, hazard := range domain.HazardCatalog() {
		if hazard == report.HazardType {
			embedding = append(embedding, 1.0)
		} else {
			embedding = append(embedding, 0.0)
		}
	}

	embedding = append(embedding,
		features.Images.MeanAlignment,
		float64(features.Images.Count)/10.0,
	)

	return embedding
}

// CosineSimilarity computes the cosine of the angle between two embeddings.
// Similarity against a zero vector is defined as 0; there is no division by
// zero. Mismatched lengths also score 0 rather than panicking, since they
// can only come from registries built with a different layout.
func CosineSimilarity(a, b domain.CompositeEmbedding) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
