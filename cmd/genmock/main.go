// Command genmock writes the mock hazard-report fixture used by the test
// suites and runs each report through the actual scoring engine so the
// printed stats can be pasted into test assertions. The fixture is fully
// deterministic: regenerating it always yields the same file.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/hazard_reports_sample.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/hazard-trust-engine/internal/domain"
	"github.com/couchcryptid/hazard-trust-engine/internal/engine"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the hazard report JSON fixture")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	reports := mockReports()

	if err := writeJSON(*out, reports); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote fixture: %s (%d reports)", *out, len(reports))

	printStats(reports)
	return nil
}

func floatPtr(v float64) *float64 { return &v }

func ts(hour, minute int) time.Time {
	return time.Date(2025, time.November, 2, hour, minute, 0, 0, time.UTC)
}

// mockReports covers every catalog category, one report with no hazard
// vocabulary at all, and one exact re-submission for duplicate detection.
func mockReports() []domain.Report {
	duplicated := domain.Report{
		ID:                 "rpt-010",
		Description:        "High waves flooding the coastal road near the fishing village, sea water entering beach houses, rescue teams helping residents move to safety",
		HazardType:         domain.HazardHighWaves,
		Location:           domain.GPSCoordinates{Latitude: 12.91, Longitude: 74.85},
		Timestamp:          ts(8, 2),
		Source:             domain.SourceCitizen,
		ReporterID:         "user-530",
		ReporterReputation: floatPtr(0.8),
	}

	resubmission := duplicated
	resubmission.ID = "rpt-011"
	resubmission.Timestamp = ts(8, 4)
	resubmission.ReporterID = "user-531"
	resubmission.ReporterReputation = nil

	return []domain.Report{
		{
			ID:                 "rpt-001",
			Description:        "Tsunami alert issued, a giant wave like a wall of water approaching the harbor",
			HazardType:         domain.HazardTsunami,
			Location:           domain.GPSCoordinates{Latitude: 13.08, Longitude: 80.29},
			Timestamp:          ts(6, 30),
			Source:             domain.SourceOfficial,
			ReporterID:         "incois-01",
			ReporterReputation: floatPtr(0.95),
		},
		{
			ID:          "rpt-002",
			Description: "Severe storm with heavy rain and strong wind battering the coast",
			HazardType:  domain.HazardStorm,
			Location:    domain.GPSCoordinates{Latitude: 17.69, Longitude: 83.22},
			Timestamp:   ts(6, 42),
			Source:      domain.SourceCitizen,
			ReporterID:  "user-118",
			DeviceInfo:  map[string]string{"model": "Pixel 8", "os": "android"},
		},
		{
			ID:          "rpt-003",
			Description: "Massive waves crashing against the pier, spray reaching the promenade",
			HazardType:  domain.HazardHighWaves,
			Location:    domain.GPSCoordinates{Latitude: 19.07, Longitude: 72.87},
			Timestamp:   ts(6, 55),
			Source:      domain.SourceCitizen,
			ReporterID:  "user-204",
		},
		{
			ID:                 "rpt-004",
			Description:        "Oil spill causing pollution and toxic contamination along the shoreline",
			HazardType:         domain.HazardPollution,
			Location:           domain.GPSCoordinates{Latitude: 9.93, Longitude: 76.26},
			Timestamp:          ts(7, 5),
			Source:             domain.SourceCitizen,
			ReporterID:         "user-311",
			ReporterReputation: floatPtr(0.6),
		},
		{
			ID:          "rpt-005",
			Description: "Floating debris and garbage, lots of trash and plastic waste near the jetty",
			HazardType:  domain.HazardDebris,
			Location:    domain.GPSCoordinates{Latitude: 15.49, Longitude: 73.82},
			Timestamp:   ts(7, 12),
			Source:      domain.SourceCitizen,
			ReporterID:  "user-092",
		},
		{
			ID:          "rpt-006",
			Description: "Strong rip current and dangerous undertow pulling swimmers away from shore",
			HazardType:  domain.HazardUnusualCurrent,
			Location:    domain.GPSCoordinates{Latitude: 8.39, Longitude: 76.97},
			Timestamp:   ts(7, 20),
			Source:      domain.SourceCitizen,
			ReporterID:  "user-457",
			DeviceInfo:  map[string]string{"model": "iPhone 15", "os": "ios"},
		},
		{
			ID:                 "rpt-007",
			Description:        "Unusually warm water near the plant outflow, temperature much higher than normal",
			HazardType:         domain.HazardTemperatureAnomaly,
			Location:           domain.GPSCoordinates{Latitude: 21.63, Longitude: 87.51},
			Timestamp:          ts(7, 31),
			Source:             domain.SourceSensor,
			ReporterID:         "buoy-17",
			ReporterReputation: floatPtr(0.9),
		},
		{
			ID:          "rpt-008",
			Description: "General hazard warning, danger near the pier, emergency crews on alert",
			HazardType:  domain.HazardOther,
			Location:    domain.GPSCoordinates{Latitude: 13.08, Longitude: 80.27},
			Timestamp:   ts(7, 40),
			Source:      domain.SourceOfficial,
		},
		{
			ID:          "rpt-009",
			Description: "Something odd happening offshore this morning",
			HazardType:  domain.HazardOther,
			Location:    domain.GPSCoordinates{Latitude: 9.93, Longitude: 76.26},
			Timestamp:   ts(7, 48),
			Source:      domain.SourceSocialMedia,
			ReporterID:  "user-663",
		},
		duplicated,
		resubmission,
	}
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(reports []domain.Report) {
	eng := engine.New(engine.Options{})

	hazardCounts := map[domain.HazardType]int{}
	priorityCounts := map[domain.Priority]int{}
	var duplicates int
	var scoreSum float64

	fmt.Println("\n=== Stats for updating test assertions ===")
	for _, report := range reports {
		out, err := eng.Process(context.Background(), report, nil)
		if err != nil {
			fmt.Printf("  %s: processing error: %v\n", report.ID, err)
			continue
		}
		hazardCounts[out.DetectedHazard]++
		priorityCounts[out.Priority]++
		scoreSum += out.TrustScore.OverallScore
		if out.IsDuplicate {
			duplicates++
		}
		fmt.Printf("  %s: hazard=%s score=%.4f priority=%s duplicate=%t\n",
			report.ID, out.DetectedHazard, out.TrustScore.OverallScore, out.Priority, out.IsDuplicate)
	}

	fmt.Printf("\nTotal: %d\n", len(reports))
	fmt.Print("By detected hazard: ")
	for _, hazard := range domain.HazardCatalog() {
		if hazardCounts[hazard] > 0 {
			fmt.Printf("%s=%d ", hazard, hazardCounts[hazard])
		}
	}
	fmt.Println()
	fmt.Printf("By priority: low=%d, medium=%d, high=%d, critical=%d\n",
		priorityCounts[domain.PriorityLow], priorityCounts[domain.PriorityMedium],
		priorityCounts[domain.PriorityHigh], priorityCounts[domain.PriorityCritical])
	fmt.Printf("Duplicates: %d\n", duplicates)
	fmt.Printf("Mean score: %.4f\n", scoreSum/float64(len(reports)))
	fmt.Printf("Registry size: %d\n", eng.RegistrySize())
}
