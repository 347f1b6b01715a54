package engine

import "github.com/couchcryptid/hazard-trust-engine/internal/domain"

// ClassifyPriority maps a trust score and hazard category onto a triage
// level. The table is evaluated in order; the first matching rule wins:
//
//  1. tsunami or storm with overall > 0.7  -> critical
//  2. overall > 0.8                        -> high
//  3. overall > 0.5                        -> medium
//  4. otherwise                            -> low
func ClassifyPriority(score domain.TrustScore, hazard domain.HazardType) domain.Priority {
	switch {
	case (hazard == domain.HazardTsunami || hazard == domain.HazardStorm) && score.OverallScore > 0.7:
		return domain.PriorityCritical
	case score.OverallScore > 0.8:
		return domain.PriorityHigh
	case score.OverallScore > 0.5:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}
