package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// SentimentScores holds keyword-matched sentiment fractions. Each fraction
// is the share of matched words in its set over all matched words, so the
// three values sum to at most 1.
type SentimentScores struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// TextFeatures is the numeric representation of a report description.
// Derived once per report; immutable.
type TextFeatures struct {
	// Embedding is a fixed-length term-frequency vector, L2-normalized to
	// unit length, or the zero vector when no vocabulary term matched.
	Embedding []float64 `json:"embedding"`

	DetectedLanguage   string          `json:"detected_language"`
	LanguageConfidence float64         `json:"language_confidence"`
	Sentiment          SentimentScores `json:"sentiment"`

	WordCount int `json:"word_count"`
	CharCount int `json:"char_count"`

	HasURLs     bool `json:"has_urls"`
	HasMentions bool `json:"has_mentions"`
	HasHashtags bool `json:"has_hashtags"`
}

// ImageSummary aggregates per-image scores. A report without images yields
// Count 0 with zero means; downstream scoring treats that as "no visual
// evidence" rather than "bad visual evidence".
type ImageSummary struct {
	Count           int       `json:"count"`
	AlignmentScores []float64 `json:"alignment_scores,omitempty"`
	QualityScores   []float64 `json:"quality_scores,omitempty"`
	MeanAlignment   float64   `json:"mean_alignment"`
	MeanQuality     float64   `json:"mean_quality"`
}

// HazardClassification scores the full catalog against a description.
type HazardClassification struct {
	Predicted  HazardType             `json:"predicted"`
	Confidence float64                `json:"confidence"`
	Scores     map[HazardType]float64 `json:"scores"`
}

// Features bundles the three extractor outputs for one report.
type Features struct {
	Text   TextFeatures         `json:"text"`
	Images ImageSummary         `json:"images"`
	Hazard HazardClassification `json:"hazard"`
}

// CompositeEmbedding is the fused fixed-length vector used for duplicate
// comparison: text embedding ⊕ normalized location ⊕ one-hot hazard
// category ⊕ image digest (mean alignment, normalized count).
type CompositeEmbedding []float64

// DuplicateResult is the outcome of matching one report against the
// registry of previously recorded composite embeddings.
type DuplicateResult struct {
	IsDuplicate     bool     `json:"is_duplicate"`
	SimilarityScore float64  `json:"similarity_score"`
	SimilarReports  []string `json:"similar_reports,omitempty"`
	ClusterID       string   `json:"cluster_id,omitempty"`
	Confidence      float64  `json:"confidence"`
}

// TrustScore is the bounded, explainable credibility estimate for a report.
type TrustScore struct {
	OverallScore float64 `json:"overall_score"`

	ContentCredibility  float64 `json:"content_credibility"`
	SourceReliability   float64 `json:"source_reliability"`
	TemporalConsistency float64 `json:"temporal_consistency"`
	SpatialConsistency  float64 `json:"spatial_consistency"`
	CrossVerification   float64 `json:"cross_verification"`

	Confidence     float64 `json:"confidence"`
	ProcessingTime float64 `json:"processing_time"`
	ModelVersion   string  `json:"model_version"`

	Factors  map[string]float64 `json:"factors,omitempty"`
	Warnings []string           `json:"warnings,omitempty"`
}

// Explanation is the human-readable rationale derived from a trust score.
// Pure presentation; it carries no information a TrustScore does not.
type Explanation struct {
	Summary         string   `json:"summary"`
	Details         []string `json:"details"`
	Recommendations []string `json:"recommendations"`
	ConfidenceLevel string   `json:"confidence_level"`
}

// ClusterID derives a deterministic identifier from a set of mutually
// similar report IDs. The input is sorted before hashing so the same
// membership set always produces the same cluster regardless of the order
// reports were discovered in.
func ClusterID(similarIDs []string) string {
	ids := make([]string, len(similarIDs))
	copy(ids, similarIDs)
	sort.Strings(ids)

	hash := sha256.Sum256([]byte(strings.Join(ids, "|")))
	return "cluster-" + hex.EncodeToString(hash[:8])
}
