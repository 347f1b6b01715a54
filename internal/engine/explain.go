package engine

import (
	"slices"

	"github.com/couchcryptid/hazard-trust-engine/internal/domain"
)

// Explain renders a trust score into an ordered, human-readable rationale
// with action recommendations. Pure presentation: it performs no new
// computation and carries no information the score and features do not.
func Explain(score domain.TrustScore, features domain.Features) domain.Explanation {
	var details []string

	switch {
	case score.OverallScore >= 0.8:
		details = append(details, "High trust score indicates very credible report")
	case score.OverallScore >= 0.6:
		details = append(details, "Moderate trust score indicates reasonably credible report")
	case score.OverallScore >= 0.4:
		details = append(details, "Low trust score indicates potential credibility issues")
	default:
		details = append(details, "Very low trust score indicates significant credibility concerns")
	}

	if score.ContentCredibility < 0.5 {
		details = append(details, "Content analysis shows potential inconsistencies")
	}
	if score.SourceReliability < 0.5 {
		details = append(details, "Source reliability is below average")
	}
	if features.Text.LanguageConfidence < 0.8 {
		details = append(details, "Language detection confidence is low")
	}
	if features.Images.Count == 0 {
		details = append(details, "No visual evidence provided")
	}
	if slices.Contains(score.Warnings, warningDuplicate) {
		details = append(details, "Report appears to be similar to existing reports")
	}

	return domain.Explanation{
		Summary:         details[0],
		Details:         details,
		Recommendations: recommendations(score),
		ConfidenceLevel: confidenceLevel(score.Confidence),
	}
}

func recommendations(score domain.TrustScore) []string {
	var recs []string

	if score.OverallScore < 0.4 {
		recs = append(recs,
			"Manual verification strongly recommended",
			"Request additional evidence from reporter",
		)
	}
	if score.CrossVerification < 0.5 {
		recs = append(recs, "Seek additional confirmation from other sources")
	}
	if score.ContentCredibility < 0.6 {
		recs = append(recs, "Review content for inconsistencies")
	}
	if len(score.Warnings) > 0 {
		recs = append(recs, "Address identified warnings before acting on report")
	}

	if len(recs) == 0 {
		recs = append(recs, "Report appears credible - proceed with standard verification")
	}
	return recs
}

func confidenceLevel(confidence float64) string {
	switch {
	case confidence > 0.8:
		return "high"
	case confidence > 0.6:
		return "medium"
	default:
		return "low"
	}
}
