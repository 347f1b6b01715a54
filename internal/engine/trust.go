package engine

import (
	"github.com/couchcryptid/hazard-trust-engine/internal/domain"
)

// Sub-score combination weights. They sum to 1 so the overall score stays
// in [0,1] before the duplicate penalty.
const (
	weightContent  = 0.30
	weightSource   = 0.20
	weightTemporal = 0.15
	weightSpatial  = 0.15
	weightCross    = 0.20

	// duplicatePenalty discounts the overall score of a flagged duplicate.
	duplicatePenalty = 0.7

	// temporalBaseline stands in for a historical-pattern model; an
	// extension seam, not a defect.
	temporalBaseline = 0.75
)

// Warning strings are fixed and ordered; operators diff them across runs.
const (
	warningLowLanguageConfidence = "Low confidence in language detection"
	warningDuplicate             = "Report may be duplicate of existing reports"
	warningVeryLowScore          = "Very low trust score - verify manually"
	warningShortDescription      = "Report description is very short"
	warningNoImages              = "No images provided - consider requesting visual evidence"
	warningProcessingError       = "Error in processing"
)

// coastalRegions are coarse bounding boxes (minLat, maxLat, minLon, maxLon)
// over Indian coastal waters, the deployment area. Anything finer than a
// box check is out of scope for spatial consistency.
var coastalRegions = [][4]float64{
	{8, 25, 68, 88},
	{6, 15, 75, 85},
}

// Score computes the multi-factor trust score for a report. Pure given its
// inputs and never fails for in-range inputs: downstream triage depends on
// always receiving a bounded answer.
func Score(report domain.Report, features domain.Features, dup domain.DuplicateResult, posts []domain.SocialPost, modelVersion string) domain.TrustScore {
	start := domain.Now()

	content := scoreContentCredibility(features)
	source := scoreSourceReliability(report)
	temporal := clamp01(temporalBaseline)
	spatial := scoreSpatialConsistency(report)
	cross := scoreCrossVerification(posts)

	overall := weightContent*content +
		weightSource*source +
		weightTemporal*temporal +
		weightSpatial*spatial +
		weightCross*cross
	if dup.IsDuplicate {
		overall *= duplicatePenalty
	}
	overall = clamp01(overall)

	return domain.TrustScore{
		OverallScore:        overall,
		ContentCredibility:  content,
		SourceReliability:   source,
		TemporalConsistency: temporal,
		SpatialConsistency:  spatial,
		CrossVerification:   cross,
		Confidence:          scoreConfidence(features, dup),
		ProcessingTime:      domain.Now().Sub(start).Seconds(),
		ModelVersion:        modelVersion,
		Factors: map[string]float64{
			"language_confidence": features.Text.LanguageConfidence,
			"image_quality":       features.Images.MeanQuality,
			"image_alignment":     features.Images.MeanAlignment,
			"hazard_confidence":   features.Hazard.Confidence,
		},
		Warnings: identifyWarnings(features, dup, overall),
	}
}

// DefaultTrustScore is the failure-policy result: when upstream feature
// extraction failed, every sub-score is a uniform 0.5 with one processing
// warning, distinguishing "confident neutral" from "one bad signal".
func DefaultTrustScore(modelVersion string) domain.TrustScore {
	return domain.TrustScore{
		OverallScore:        0.5,
		ContentCredibility:  0.5,
		SourceReliability:   0.5,
		TemporalConsistency: 0.5,
		SpatialConsistency:  0.5,
		CrossVerification:   0.5,
		Confidence:          0.5,
		ModelVersion:        modelVersion,
		Warnings:            []string{warningProcessingError},
	}
}

// scoreContentCredibility weighs language confidence, description length,
// hazard-classification confidence, and visual evidence. Reports without
// images receive a fixed partial credit (0.3 weight at a 0.7 score) instead
// of the image terms.
func scoreContentCredibility(features domain.Features) float64 {
	score := 0.3 * features.Text.LanguageConfidence
	score += 0.2 * lengthScore(features.Text.WordCount)
	score += 0.2 * features.Hazard.Confidence

	if features.Images.Count > 0 {
		score += 0.15*features.Images.MeanQuality + 0.15*features.Images.MeanAlignment
	} else {
		score += 0.3 * 0.7
	}

	return clamp01(score)
}

// lengthScore is 1.0 for 50-500 words, scales linearly down below 50, and
// decays linearly above 500 with a floor of 0.5.
func lengthScore(wordCount int) float64 {
	switch {
	case wordCount >= 50 && wordCount <= 500:
		return 1.0
	case wordCount < 50:
		return float64(wordCount) / 50.0
	default:
		decayed := 1.0 - float64(wordCount-500)/1000.0
		if decayed < 0.5 {
			return 0.5
		}
		return decayed
	}
}

// scoreSourceReliability starts from a neutral base and credits reporter
// reputation, device metadata, and GPS accuracy when present.
func scoreSourceReliability(report domain.Report) float64 {
	score := 0.5

	if report.ReporterReputation != nil {
		score += 0.4 * *report.ReporterReputation
	}
	if len(report.DeviceInfo) > 0 {
		score += 0.1
	}
	if report.Location.Accuracy != nil {
		accuracyScore := 1.0 - *report.Location.Accuracy/100.0
		if accuracyScore < 0 {
			accuracyScore = 0
		}
		score += 0.2 * accuracyScore
	}

	return clamp01(score)
}

// scoreSpatialConsistency is a coarse plausibility check: reports inside a
// known coastal bounding box score 0.8, everything else a neutral 0.5.
func scoreSpatialConsistency(report domain.Report) float64 {
	lat, lon := report.Location.Latitude, report.Location.Longitude
	for _, region := range coastalRegions {
		if lat >= region[0] && lat <= region[1] && lon >= region[2] && lon <= region[3] {
			return 0.8
		}
	}
	return 0.5
}

// scoreCrossVerification saturates at five corroborating items. No
// corroboration data at all scores a neutral 0.5 rather than 0.
func scoreCrossVerification(posts []domain.SocialPost) float64 {
	if len(posts) == 0 {
		return 0.5
	}
	score := float64(len(posts)) / 5.0
	if score > 1 {
		return 1
	}
	return score
}

// scoreConfidence averages the confidences of the contributing signals.
// Image quality only participates when images were actually provided.
func scoreConfidence(features domain.Features, dup domain.DuplicateResult) float64 {
	confidences := []float64{
		features.Text.LanguageConfidence,
		features.Hazard.Confidence,
		dup.Confidence,
	}
	if features.Images.Count > 0 {
		confidences = append(confidences, features.Images.MeanQuality)
	}
	return mean(confidences)
}

// identifyWarnings appends every applicable warning in a fixed order.
func identifyWarnings(features domain.Features, dup domain.DuplicateResult, overall float64) []string {
	var warnings []string

	if features.Text.LanguageConfidence < 0.8 {
		warnings = append(warnings, warningLowLanguageConfidence)
	}
	if dup.IsDuplicate {
		warnings = append(warnings, warningDuplicate)
	}
	if overall < 0.3 {
		warnings = append(warnings, warningVeryLowScore)
	}
	if features.Text.WordCount < 20 {
		warnings = append(warnings, warningShortDescription)
	}
	if features.Images.Count == 0 {
		warnings = append(warnings, warningNoImages)
	}

	return warnings
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
