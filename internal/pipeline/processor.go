package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/hazard-trust-engine/internal/domain"
	"github.com/couchcryptid/hazard-trust-engine/internal/engine"
	"github.com/couchcryptid/hazard-trust-engine/internal/observability"
)

// ReportProcessor implements Processor by running each report through the
// trust engine, with optional social-media corroboration lookup.
type ReportProcessor struct {
	engine       *engine.Engine
	corroborator engine.CorroborationSource
	logger       *slog.Logger
	metrics      *observability.Metrics
}

// NewProcessor creates a ReportProcessor. Pass a nil corroborator to score
// without cross-verification data.
func NewProcessor(eng *engine.Engine, corroborator engine.CorroborationSource, logger *slog.Logger, metrics *observability.Metrics) *ReportProcessor {
	return &ReportProcessor{
		engine:       eng,
		corroborator: corroborator,
		logger:       logger,
		metrics:      metrics,
	}
}

// Process deserializes, validates, and scores one raw report message.
// Malformed or invalid messages fail and are skipped by the pipeline.
// Feature-extraction failures degrade to the documented default trust
// score so triage always receives an answer for a well-formed report.
func (p *ReportProcessor) Process(ctx context.Context, raw domain.RawEvent) (domain.ProcessedReport, error) {
	var report domain.Report
	if err := json.Unmarshal(raw.Value, &report); err != nil {
		return domain.ProcessedReport{}, fmt.Errorf("parse report: %w", err)
	}

	processed, err := p.ProcessReport(ctx, report)
	switch {
	case err == nil:
	case errors.Is(err, engine.ErrFeatureExtraction):
		report.EnsureID()
		p.logger.Warn("feature extraction failed, using default trust score",
			"report_id", report.ID, "error", err)
		processed = p.defaultProcessed(report)
		p.observe(processed)
	default:
		return domain.ProcessedReport{}, err
	}

	return processed, nil
}

// ProcessReport validates and scores a single already-decoded report.
// Errors surface untranslated so callers can apply their own policy:
// the streaming path falls back to the default score on extraction
// failures, the HTTP path maps them to status codes.
func (p *ReportProcessor) ProcessReport(ctx context.Context, report domain.Report) (domain.ProcessedReport, error) {
	if err := report.Validate(); err != nil {
		return domain.ProcessedReport{}, err
	}
	report.EnsureID()

	posts := p.lookupCorroboration(ctx, report)

	processed, err := p.engine.Process(ctx, report, posts)
	if err != nil {
		return domain.ProcessedReport{}, err
	}

	p.observe(processed)
	return processed, nil
}

// lookupCorroboration fetches related social posts when a corroborator is
// wired in. Lookup failures degrade to "no corroboration" rather than
// failing the report: cross-verification then scores neutral.
func (p *ReportProcessor) lookupCorroboration(ctx context.Context, report domain.Report) []domain.SocialPost {
	if p.corroborator == nil {
		return nil
	}
	posts, err := p.corroborator.FindRelated(ctx, report)
	if err != nil {
		p.logger.Warn("corroboration lookup failed", "report_id", report.ID, "error", err)
		return nil
	}
	return posts
}

func (p *ReportProcessor) defaultProcessed(report domain.Report) domain.ProcessedReport {
	score := p.engine.DefaultScore()
	return domain.ProcessedReport{
		Report:            report,
		TrustScore:        score,
		Priority:          engine.ClassifyPriority(score, report.HazardType),
		Explanation:       engine.Explain(score, domain.Features{}),
		DetectedHazard:    domain.HazardOther,
		ProcessedAt:       domain.Now(),
		ProcessingVersion: engine.ProcessingVersion,
	}
}

func (p *ReportProcessor) observe(processed domain.ProcessedReport) {
	p.metrics.TrustScore.Observe(processed.TrustScore.OverallScore)
	p.metrics.ReportsByPriority.WithLabelValues(string(processed.Priority)).Inc()
	if processed.IsDuplicate {
		p.metrics.DuplicatesDetected.Inc()
	}
	p.metrics.RegistrySize.Set(float64(p.engine.RegistrySize()))
}
