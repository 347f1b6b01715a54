package engine

import (
	"strings"

	"github.com/couchcryptid/hazard-trust-engine/internal/domain"
)

// hazardKeywords maps each catalog entry to its fixed keyword list. A
// category's raw score is the fraction of its keywords present in the text,
// so categories score independently and do not sum to 1.
var hazardKeywords = map[domain.HazardType][]string{
	domain.HazardTsunami:            {"tsunami", "giant wave", "wall of water", "earthquake wave"},
	domain.HazardStorm:              {"storm", "cyclone", "hurricane", "typhoon", "wind", "rain"},
	domain.HazardHighWaves:          {"high waves", "big waves", "large waves", "massive waves", "huge waves"},
	domain.HazardPollution:          {"pollution", "oil spill", "contamination", "toxic", "chemicals"},
	domain.HazardDebris:             {"debris", "garbage", "waste", "floating objects", "trash"},
	domain.HazardUnusualCurrent:     {"current", "undertow", "rip current", "strange current"},
	domain.HazardTemperatureAnomaly: {"hot water", "cold water", "temperature", "warm", "cool"},
	domain.HazardOther:              {"hazard", "danger", "emergency", "alert", "warning"},
}

// ClassifyHazard scores the full catalog against a description and picks
// the best match. Ties break toward the first-declared catalog entry so
// classification is deterministic. When nothing matches, the report is
// filed under the catch-all category with near-zero confidence.
func ClassifyHazard(text string) domain.HazardClassification {
	lower := strings.ToLower(text)

	scores := make(map[domain.HazardType]float64, len(hazardKeywords))
	var best domain.HazardType
	bestScore := 0.0

	for _, hazard := range domain.HazardCatalog() {
		keywords := hazardKeywords[hazard]
		matched := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				matched++
			}
		}
		score := float64(matched) / float64(len(keywords))
		scores[hazard] = score

		// Strict greater-than keeps the earlier catalog entry on ties.
		if score > bestScore {
			best = hazard
			bestScore = score
		}
	}

	if bestScore == 0 {
		return domain.HazardClassification{
			Predicted:  domain.HazardOther,
			Confidence: 0.1,
			Scores:     scores,
		}
	}

	return domain.HazardClassification{
		Predicted:  best,
		Confidence: bestScore,
		Scores:     scores,
	}
}
