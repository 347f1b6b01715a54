// Command score runs a batch of hazard reports from a JSON file through the
// full scoring flow offline: validation, feature extraction, duplicate
// detection, trust scoring, and priority classification. Useful for
// inspecting how a corpus would score without standing up Kafka.
//
// Usage:
//
//	go run ./cmd/score -reports data/mock/hazard_reports_sample.json -v
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/couchcryptid/hazard-trust-engine/internal/domain"
	"github.com/couchcryptid/hazard-trust-engine/internal/engine"
)

// phase tracks pass/fail for one stage of the offline run.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	reportsPath := flag.String("reports", "", "path to a JSON array of hazard reports")
	threshold := flag.Float64("threshold", 0, "duplicate similarity threshold in (0,1); 0 uses the default")
	verbose := flag.Bool("v", false, "print per-report scoring details")
	flag.Parse()

	if *reportsPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*reportsPath, *threshold, *verbose); code != 0 {
		os.Exit(code)
	}
}

func run(reportsPath string, threshold float64, verbose bool) int {
	reports, err := loadReports(reportsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load reports: %v\n", err)
		return 1
	}

	fmt.Printf("=== Offline Trust Scoring (%d reports) ===\n\n", len(reports))

	validation := validateReports(reports)

	eng := engine.New(engine.Options{SimilarityThreshold: threshold})
	scoring, processed := scoreReports(eng, reports, verbose)

	printSummary(processed, eng.RegistrySize())

	// Report results.
	fmt.Println()
	allPassed := true
	for _, p := range []*phase{validation, scoring} {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-30s %s\n", p.name, status)
	}

	for _, p := range []*phase{validation, scoring} {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if !allPassed {
		return 1
	}
	return 0
}

func loadReports(path string) ([]domain.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reports []domain.Report
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func validateReports(reports []domain.Report) *phase {
	p := &phase{name: "Validation"}
	for i, report := range reports {
		if err := report.Validate(); err != nil {
			p.errorf("report %d (%s): %v", i, report.ID, err)
		}
	}
	return p
}

func scoreReports(eng *engine.Engine, reports []domain.Report, verbose bool) (*phase, []domain.ProcessedReport) {
	p := &phase{name: "Scoring"}
	processed := make([]domain.ProcessedReport, 0, len(reports))

	for i := range reports {
		report := reports[i]
		if err := report.Validate(); err != nil {
			continue // counted by the validation phase
		}
		report.EnsureID()

		out, err := eng.Process(context.Background(), report, nil)
		if err != nil {
			p.errorf("report %s: %v", report.ID, err)
			continue
		}
		processed = append(processed, out)

		if verbose {
			printReport(out)
		}
	}

	return p, processed
}

func printReport(out domain.ProcessedReport) {
	fmt.Printf("%s  score=%.4f  priority=%-8s  hazard=%s\n",
		out.Report.ID, out.TrustScore.OverallScore, out.Priority, out.DetectedHazard)
	fmt.Printf("    content=%.2f source=%.2f temporal=%.2f spatial=%.2f cross=%.2f confidence=%.2f\n",
		out.TrustScore.ContentCredibility, out.TrustScore.SourceReliability,
		out.TrustScore.TemporalConsistency, out.TrustScore.SpatialConsistency,
		out.TrustScore.CrossVerification, out.TrustScore.Confidence)
	if out.IsDuplicate {
		fmt.Printf("    duplicate of %s (cluster %s)\n",
			strings.Join(out.SimilarReports, ", "), out.ClusterID)
	}
	for _, w := range out.TrustScore.Warnings {
		fmt.Printf("    warning: %s\n", w)
	}
	fmt.Printf("    %s\n", out.Explanation.Summary)
}

func printSummary(processed []domain.ProcessedReport, registrySize int) {
	hazardCounts := map[domain.HazardType]int{}
	priorityCounts := map[domain.Priority]int{}
	var duplicates int
	var scoreSum float64

	for _, out := range processed {
		hazardCounts[out.DetectedHazard]++
		priorityCounts[out.Priority]++
		scoreSum += out.TrustScore.OverallScore
		if out.IsDuplicate {
			duplicates++
		}
	}

	fmt.Printf("Scored: %d\n", len(processed))
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
	if len(processed) > 0 {
		fmt.Printf("Mean score: %.4f\n", scoreSum/float64(len(processed)))
	}
	fmt.Printf("Registry size: %d\n", registrySize)
}
