package engine

import "errors"

var (
	// ErrFeatureExtraction marks unrecoverable extraction input, e.g. an
	// undecodable image. The caller decides whether to retry or skip.
	ErrFeatureExtraction = errors.New("feature extraction failed")

	// ErrAlreadyRecorded is returned when duplicate detection is invoked a
	// second time for a report ID the registry has already recorded.
	ErrAlreadyRecorded = errors.New("report already recorded in registry")
)
