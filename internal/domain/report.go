package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// HazardType identifies one entry of the closed hazard catalog.
type HazardType string

const (
	HazardTsunami            HazardType = "tsunami"
	HazardStorm              HazardType = "storm"
	HazardHighWaves          HazardType = "high_waves"
	HazardPollution          HazardType = "pollution"
	HazardDebris             HazardType = "debris"
	HazardUnusualCurrent     HazardType = "unusual_current"
	HazardTemperatureAnomaly HazardType = "temperature_anomaly"
	HazardOther              HazardType = "other"
)

// HazardCatalog returns the catalog in declaration order. Classification
// tie-breaks and the one-hot segment of the composite embedding depend on
// this order staying fixed.
func HazardCatalog() []HazardType {
	return []HazardType{
		HazardTsunami,
		HazardStorm,
		HazardHighWaves,
		HazardPollution,
		HazardDebris,
		HazardUnusualCurrent,
		HazardTemperatureAnomaly,
		HazardOther,
	}
}

// ReportSource identifies where a report entered the system.
type ReportSource string

const (
	SourceCitizen     ReportSource = "citizen"
	SourceSocialMedia ReportSource = "social_media"
	SourceOfficial    ReportSource = "official"
	SourceSensor      ReportSource = "sensor"
	SourceSatellite   ReportSource = "satellite"
)

// Priority is the triage level derived from a trust score and hazard type.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// GPSCoordinates is a WGS-84 position with optional accuracy in meters.
type GPSCoordinates struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

// ImageData is an opaque image payload attached to a report.
type ImageData struct {
	Data        []byte `json:"data"`
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// Report is a citizen- or collector-submitted hazard observation.
// Immutable once created; the engine only reads it.
type Report struct {
	ID           string         `json:"id"`
	Description  string         `json:"description"`
	HazardType   HazardType     `json:"hazard_type"`
	Location     GPSCoordinates `json:"location"`
	LocationName string         `json:"location_name,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
	Images       []ImageData    `json:"images,omitempty"`

	ReporterID         string            `json:"reporter_id,omitempty"`
	ReporterReputation *float64          `json:"reporter_reputation,omitempty"`
	Source             ReportSource      `json:"source,omitempty"`
	DeviceInfo         map[string]string `json:"device_info,omitempty"`
	Language           string            `json:"language,omitempty"`
}

// SocialPost is an external corroborating signal. Only its presence feeds
// cross-verification; the remaining fields are payload for downstream
// consumers.
type SocialPost struct {
	ID              string          `json:"id"`
	Text            string          `json:"text"`
	Platform        string          `json:"platform"`
	OriginalURL     string          `json:"original_url,omitempty"`
	AuthorID        string          `json:"author_id"`
	AuthorFollowers int             `json:"author_followers,omitempty"`
	AuthorVerified  bool            `json:"author_verified,omitempty"`
	Likes           int             `json:"likes,omitempty"`
	Shares          int             `json:"shares,omitempty"`
	Comments        int             `json:"comments,omitempty"`
	Location        *GPSCoordinates `json:"location,omitempty"`
	Hashtags        []string        `json:"hashtags,omitempty"`
	PostedAt        time.Time       `json:"posted_at"`
}

// ErrInvalidReport marks validation failures rejected before the engine runs.
var ErrInvalidReport = errors.New("invalid report")

// Validate rejects structurally malformed reports. Validation runs in the
// ingestion layer; the engine assumes its input has already passed.
func (r *Report) Validate() error {
	if r.Description == "" {
		return fmt.Errorf("%w: empty description", ErrInvalidReport)
	}
	if r.Location.Latitude < -90 || r.Location.Latitude > 90 {
		return fmt.Errorf("%w: latitude %.4f out of range [-90,90]", ErrInvalidReport, r.Location.Latitude)
	}
	if r.Location.Longitude < -180 || r.Location.Longitude > 180 {
		return fmt.Errorf("%w: longitude %.4f out of range [-180,180]", ErrInvalidReport, r.Location.Longitude)
	}
	if r.Location.Accuracy != nil && *r.Location.Accuracy < 0 {
		return fmt.Errorf("%w: negative GPS accuracy", ErrInvalidReport)
	}
	if r.ReporterReputation != nil && (*r.ReporterReputation < 0 || *r.ReporterReputation > 1) {
		return fmt.Errorf("%w: reporter reputation %.2f out of range [0,1]", ErrInvalidReport, *r.ReporterReputation)
	}
	return nil
}

// EnsureID assigns a server-generated UUID when the submitter provided none.
func (r *Report) EnsureID() {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// ProcessedReport is the serialized result destined for the sink topic:
// the original report plus everything the engine derived from it.
type ProcessedReport struct {
	Report      Report      `json:"report"`
	TrustScore  TrustScore  `json:"trust_score"`
	Priority    Priority    `json:"priority"`
	Explanation Explanation `json:"explanation"`

	DetectedHazard     HazardType `json:"detected_hazard"`
	SentimentScore     float64    `json:"sentiment_score"`
	LanguageConfidence float64    `json:"language_confidence"`

	SimilarReports []string `json:"similar_reports,omitempty"`
	IsDuplicate    bool     `json:"is_duplicate"`
	ClusterID      string   `json:"cluster_id,omitempty"`

	ProcessedAt       time.Time `json:"processed_at"`
	ProcessingVersion string    `json:"processing_version"`
}
