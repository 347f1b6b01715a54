package engine_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/couchcryptid/hazard-trust-engine/internal/domain"
	"github.com/couchcryptid/hazard-trust-engine/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitEmbedding(dim, axis int) domain.CompositeEmbedding {
	e := make(domain.CompositeEmbedding, dim)
	e[axis] = 1
	return e
}

func TestRegistry_FirstReportIsNeverADuplicate(t *testing.T) {
	r := engine.NewRegistry(0)

	result, err := r.DetectDuplicate("rpt-1", unitEmbedding(4, 0))
	require.NoError(t, err)

	assert.False(t, result.IsDuplicate)
	assert.Empty(t, result.SimilarReports)
	assert.InDelta(t, 0.9, result.Confidence, 1e-9)
	assert.Equal(t, 1, r.Size())
}

func TestRegistry_IdenticalEmbeddingsAreDuplicates(t *testing.T) {
	r := engine.NewRegistry(0)
	embedding := domain.CompositeEmbedding{0.5, 0.3, 0.8, 0.1}

	_, err := r.DetectDuplicate("rpt-1", embedding)
	require.NoError(t, err)

	result, err := r.DetectDuplicate("rpt-2", embedding)
	require.NoError(t, err)

	assert.True(t, result.IsDuplicate)
	assert.InDelta(t, 1.0, result.SimilarityScore, 1e-9)
	assert.Equal(t, []string{"rpt-1"}, result.SimilarReports)
	assert.NotEmpty(t, result.ClusterID)
	assert.InDelta(t, 0.8, result.Confidence, 1e-9)
	assert.Equal(t, 2, r.Size(), "duplicates are recorded too")
}

func TestRegistry_DissimilarEmbeddingsAreUnique(t *testing.T) {
	r := engine.NewRegistry(0)

	_, err := r.DetectDuplicate("rpt-1", unitEmbedding(4, 0))
	require.NoError(t, err)

	result, err := r.DetectDuplicate("rpt-2", unitEmbedding(4, 1))
	require.NoError(t, err)
	assert.False(t, result.IsDuplicate)
}

func TestRegistry_RepeatedIDReturnsError(t *testing.T) {
	r := engine.NewRegistry(0)
	embedding := unitEmbedding(4, 0)

	_, err := r.DetectDuplicate("rpt-1", embedding)
	require.NoError(t, err)

	_, err = r.DetectDuplicate("rpt-1", embedding)
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrAlreadyRecorded)
	assert.Equal(t, 1, r.Size())
}

func TestRegistry_SimilarReportsOrderedBySimilarity(t *testing.T) {
	r := engine.NewRegistry(0)

	// Closest match first, exact ties broken by ID.
	_, err := r.DetectDuplicate("rpt-far", domain.CompositeEmbedding{1, 0.4, 0})
	require.NoError(t, err)
	_, err = r.DetectDuplicate("rpt-near", domain.CompositeEmbedding{1, 0.1, 0})
	require.NoError(t, err)

	result, err := r.DetectDuplicate("rpt-new", domain.CompositeEmbedding{1, 0, 0})
	require.NoError(t, err)

	require.True(t, result.IsDuplicate)
	assert.Equal(t, []string{"rpt-near", "rpt-far"}, result.SimilarReports)
	assert.InDelta(t, engine.CosineSimilarity(
		domain.CompositeEmbedding{1, 0, 0},
		domain.CompositeEmbedding{1, 0.1, 0},
	), result.SimilarityScore, 1e-9)
}

func TestRegistry_ClusterIDStableAcrossDiscoveryOrder(t *testing.T) {
	embedding := domain.CompositeEmbedding{0.5, 0.5, 0.5}

	first := engine.NewRegistry(0)
	_, err := first.DetectDuplicate("rpt-a", embedding)
	require.NoError(t, err)
	_, err = first.DetectDuplicate("rpt-b", embedding)
	require.NoError(t, err)
	resultFirst, err := first.DetectDuplicate("rpt-new", embedding)
	require.NoError(t, err)

	second := engine.NewRegistry(0)
	_, err = second.DetectDuplicate("rpt-b", embedding)
	require.NoError(t, err)
	_, err = second.DetectDuplicate("rpt-a", embedding)
	require.NoError(t, err)
	resultSecond, err := second.DetectDuplicate("rpt-new", embedding)
	require.NoError(t, err)

	assert.Equal(t, resultFirst.ClusterID, resultSecond.ClusterID)
}

func TestRegistry_CustomThreshold(t *testing.T) {
	// cos(a,b) ≈ 0.995 for these two; a 0.999 threshold treats them as unique.
	strict := engine.NewRegistry(0.999)
	_, err := strict.DetectDuplicate("rpt-1", domain.CompositeEmbedding{1, 0.1, 0})
	require.NoError(t, err)
	result, err := strict.DetectDuplicate("rpt-2", domain.CompositeEmbedding{1, 0, 0})
	require.NoError(t, err)
	assert.False(t, result.IsDuplicate)
}

func TestRegistry_GrowsByOnePerReport(t *testing.T) {
	r := engine.NewRegistry(0)

	for i := 0; i < 50; i++ {
		_, err := r.DetectDuplicate(fmt.Sprintf("rpt-%03d", i), unitEmbedding(64, i%64))
		require.NoError(t, err)
	}
	assert.Equal(t, 50, r.Size())
}

func TestRegistry_ConcurrentDetection(t *testing.T) {
	r := engine.NewRegistry(0)
	embedding := domain.CompositeEmbedding{0.2, 0.4, 0.6}

	const workers = 50
	var wg sync.WaitGroup
	results := make([]domain.DuplicateResult, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := r.DetectDuplicate(fmt.Sprintf("rpt-%03d", i), embedding)
			assert.NoError(t, err)
			results[i] = result
		}(i)
	}
	wg.Wait()

	assert.Equal(t, workers, r.Size())

	// Scan and insert share one critical section, so exactly one report saw
	// an empty registry; every other one matched at least one prior report.
	var unique int
	for _, result := range results {
		if !result.IsDuplicate {
			unique++
		}
	}
	assert.Equal(t, 1, unique)
}
