package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/couchcryptid/hazard-trust-engine/internal/domain"
)

// vocabulary is the fixed bag-of-terms basis for text embeddings. The
// embedding dimensionality and term order are part of the registry's wire
// contract: changing either invalidates every recorded composite embedding.
var vocabulary = []string{
	"wave", "water", "sea", "ocean", "beach", "coast", "shore",
	"storm", "wind", "rain", "debris", "pollution", "danger",
	"emergency", "safety", "rescue", "help", "alert", "warning",
}

// Sentiment keyword sets. Fractions are computed over the total matched
// count, not the total word count, so an unmatched description scores
// neutral zeros rather than skewing any direction.
var (
	positiveWords = wordSet("good", "safe", "calm", "clear", "beautiful", "peaceful")
	negativeWords = wordSet("danger", "emergency", "massive", "huge", "scary", "terrible", "bad", "urgent")
	neutralWords  = wordSet("report", "observe", "see", "notice", "location")
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// ExtractTextFeatures turns a raw description into its numeric
// representation. Deterministic: the same text always yields bit-identical
// features. The declared language feeds the confidence heuristic only.
func ExtractTextFeatures(text, declaredLanguage string) (domain.TextFeatures, error) {
	if text == "" {
		return domain.TextFeatures{}, fmt.Errorf("%w: empty description", ErrFeatureExtraction)
	}
	if declaredLanguage == "" {
		declaredLanguage = "en"
	}

	lower := strings.ToLower(text)
	words := strings.Fields(lower)

	detected := detectLanguage(text)
	confidence := 0.7
	if detected == declaredLanguage {
		confidence = 0.9
	}

	return domain.TextFeatures{
		Embedding:          embedWords(words),
		DetectedLanguage:   detected,
		LanguageConfidence: confidence,
		Sentiment:          analyzeSentiment(words),
		WordCount:          len(words),
		CharCount:          len([]rune(text)),
		HasURLs:            strings.Contains(lower, "http"),
		HasMentions:        strings.Contains(text, "@"),
		HasHashtags:        strings.Contains(text, "#"),
	}, nil
}

// detectLanguage is a coarse ASCII heuristic: any non-ASCII rune is taken
// as evidence of a non-English (Devanagari-script) report. A real language
// model can replace this behind the same extraction interface.
func detectLanguage(text string) string {
	for _, r := range text {
		if r > 127 {
			return "hi"
		}
	}
	return "en"
}

// analyzeSentiment computes keyword-matched sentiment fractions. The
// denominator is floored at 1 to avoid dividing by zero on descriptions
// that match no sentiment keyword.
func analyzeSentiment(words []string) domain.SentimentScores {
	var positive, negative, neutral int
	for _, w := range words {
		if _, ok := positiveWords[w]; ok {
			positive++
		}
		if _, ok := negativeWords[w]; ok {
			negative++
		}
		if _, ok := neutralWords[w]; ok {
			neutral++
		}
	}

	total := positive + negative + neutral
	if total < 1 {
		total = 1
	}

	return domain.SentimentScores{
		Positive: float64(positive) / float64(total),
		Negative: float64(negative) / float64(total),
		Neutral:  float64(neutral) / float64(total),
	}
}

// embedWords builds the term-frequency embedding: one dimension per
// vocabulary term, counting words that contain the term as a substring,
// L2-normalized. An all-zero count vector stays zero; a direction is never
// fabricated for text with no domain vocabulary.
func embedWords(words []string) []float64 {
	embedding := make([]float64, len(vocabulary))
	for i, term := range vocabulary {
		count := 0
		for _, w := range words {
			if strings.Contains(w, term) {
				count++
			}
		}
		embedding[i] = float64(count)
	}

	var sumSquares float64
	for _, v := range embedding {
		sumSquares += v * v
	}
	if sumSquares == 0 {
		return embedding
	}

	norm := math.Sqrt(sumSquares)
	for i := range embedding {
		embedding[i] /= norm
	}
	return embedding
}
