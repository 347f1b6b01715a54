// Package domain models citizen-submitted ocean hazard reports and the
// artifacts derived from them by the trust engine.
//
// # Data Source
//
// Reports originate from the mobile app and the social-media collector.
// Both publish flat JSON to the Kafka source topic; the collector tags its
// messages with source "social_media". A report is immutable once created;
// only derived artifacts (features, duplicate result, trust score) are
// produced from it.
//
// # Hazard Catalog
//
// The catalog is closed and ordered. Classification scores each category
// independently against a fixed keyword list, so raw scores do not sum to 1.
// The predicted category is the arg max; ties break toward the
// first-declared category. When every category scores zero the report is
// classified as HazardOther with confidence 0.1.
//
//	tsunami | storm | high_waves | pollution | debris |
//	unusual_current | temperature_anomaly | other
//
// # Trust Score Conventions
//
// A trust score combines five sub-scores, each clamped to [0,1]:
//
//	overall = 0.30*content + 0.20*source + 0.15*temporal +
//	          0.15*spatial + 0.20*cross
//
// Duplicates are penalized by multiplying the overall score by 0.7 after
// combination. The result is clamped to [0,1] again. Warnings are ordered
// and deterministic so operators can diff scores across runs.
//
// # Duplicate Clusters
//
// Cluster IDs are deterministic SHA-256 digests of the sorted set of
// matched report IDs, so clusters with the same membership produce the same
// ID regardless of discovery order. See [ClusterID].
package domain
