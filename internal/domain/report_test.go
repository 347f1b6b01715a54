package domain_test

import (
	"testing"
	"time"

	"github.com/couchcryptid/hazard-trust-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func validReport() domain.Report {
	return domain.Report{
		ID:          "rpt-1",
		Description: "High waves near the harbor entrance",
		HazardType:  domain.HazardHighWaves,
		Location:    domain.GPSCoordinates{Latitude: 12.91, Longitude: 74.85},
		Timestamp:   time.Date(2025, time.November, 2, 8, 0, 0, 0, time.UTC),
	}
}

func TestReportValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*domain.Report)
		wantErr string
	}{
		{name: "valid report", mutate: func(r *domain.Report) {}},
		{
			name:    "empty description",
			mutate:  func(r *domain.Report) { r.Description = "" },
			wantErr: "description",
		},
		{
			name:    "latitude above range",
			mutate:  func(r *domain.Report) { r.Location.Latitude = 90.01 },
			wantErr: "latitude",
		},
		{
			name:   "latitude at the pole is valid",
			mutate: func(r *domain.Report) { r.Location.Latitude = -90 },
		},
		{
			name:    "longitude below range",
			mutate:  func(r *domain.Report) { r.Location.Longitude = -180.5 },
			wantErr: "longitude",
		},
		{
			name:   "longitude at the antimeridian is valid",
			mutate: func(r *domain.Report) { r.Location.Longitude = 180 },
		},
		{
			name:    "negative GPS accuracy",
			mutate:  func(r *domain.Report) { r.Location.Accuracy = floatPtr(-1) },
			wantErr: "accuracy",
		},
		{
			name:   "zero GPS accuracy is valid",
			mutate: func(r *domain.Report) { r.Location.Accuracy = floatPtr(0) },
		},
		{
			name:    "reputation above range",
			mutate:  func(r *domain.Report) { r.ReporterReputation = floatPtr(1.2) },
			wantErr: "reputation",
		},
		{
			name:    "negative reputation",
			mutate:  func(r *domain.Report) { r.ReporterReputation = floatPtr(-0.1) },
			wantErr: "reputation",
		},
		{
			name:   "reputation bounds are inclusive",
			mutate: func(r *domain.Report) { r.ReporterReputation = floatPtr(1) },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			report := validReport()
			tc.mutate(&report)

			err := report.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidReport)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestReportEnsureID(t *testing.T) {
	report := validReport()
	report.ID = ""
	report.EnsureID()
	assert.NotEmpty(t, report.ID)

	assigned := report.ID
	report.EnsureID()
	assert.Equal(t, assigned, report.ID, "existing IDs are never replaced")
}
