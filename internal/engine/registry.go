package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/couchcryptid/hazard-trust-engine/internal/domain"
)

// DefaultSimilarityThreshold is the cosine similarity above which two
// reports are considered near-duplicates.
const DefaultSimilarityThreshold = 0.8

// Duplicate detection confidences are fixed constants, a documented
// simplification rather than a learned calibration.
const (
	duplicateConfidence = 0.8
	uniqueConfidence    = 0.9
)

// Registry is the append-only store of composite embeddings for every
// report the engine has seen. It is the engine's only shared mutable state:
// the similarity scan and the insertion for one report run under a single
// lock so two concurrently processed duplicates cannot miss each other.
//
// Entries are never evicted. Lookup is linear in registry size, which is
// acceptable at the corpus scale in scope; an ANN index can replace the
// scan behind the same DetectDuplicate contract.
//
// Lock acquisition cannot time out, so there is no retryable contention
// error in the API; callers either hold the lock or wait for it.
type Registry struct {
	mu        sync.Mutex
	entries   map[string]domain.CompositeEmbedding
	threshold float64
}

// NewRegistry creates an empty registry. A threshold of 0 selects
// DefaultSimilarityThreshold.
func NewRegistry(threshold float64) *Registry {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &Registry{
		entries:   make(map[string]domain.CompositeEmbedding),
		threshold: threshold,
	}
}

// match pairs a prior report ID with its similarity to the incoming one.
type match struct {
	id         string
	similarity float64
}

// DetectDuplicate compares a report's embedding against every recorded one
// and then records it, all within one critical section. The report never
// matches itself: insertion happens strictly after the scan. Every report
// ends up recorded, duplicates included, so clusters can grow transitively.
//
// Calling DetectDuplicate twice for the same report ID returns
// ErrAlreadyRecorded.
func (r *Registry) DetectDuplicate(reportID string, embedding domain.CompositeEmbedding) (domain.DuplicateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[reportID]; exists {
		return domain.DuplicateResult{}, fmt.Errorf("%w: %s", ErrAlreadyRecorded, reportID)
	}

	var matches []match
	for id, existing := range r.entries {
		similarity := CosineSimilarity(embedding, existing)
		if similarity > r.threshold {
			matches = append(matches, match{id: id, similarity: similarity})
		}
	}

	r.entries[reportID] = embedding

	if len(matches) == 0 {
		return domain.DuplicateResult{
			IsDuplicate: false,
			Confidence:  uniqueConfidence,
		}, nil
	}

	// Most similar first; ID order breaks exact ties so the result is
	// independent of map iteration order.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].similarity != matches[j].similarity {
			return matches[i].similarity > matches[j].similarity
		}
		return matches[i].id < matches[j].id
	})

	similarIDs := make([]string, len(matches))
	for i, m := range matches {
		similarIDs[i] = m.id
	}

	return domain.DuplicateResult{
		IsDuplicate:     true,
		SimilarityScore: matches[0].similarity,
		SimilarReports:  similarIDs,
		ClusterID:       domain.ClusterID(similarIDs),
		Confidence:      duplicateConfidence,
	}, nil
}

// Size reports the number of recorded embeddings.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
