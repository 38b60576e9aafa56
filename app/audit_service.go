package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"fairlens/domain/audit"
	"fairlens/domain/table"
	"fairlens/internal"
	"fairlens/internal/analysis/profile"
	"fairlens/internal/engine"
	"fairlens/internal/errors"
	"fairlens/internal/privacy"
	"fairlens/internal/render"
	"fairlens/internal/similarity"
	"fairlens/ports"
)

// FullAuditRequest bundles everything one combined audit needs
type FullAuditRequest struct {
	Dataset             *table.Dataset
	Label               table.LabelSpec
	ProtectedAttributes []string
	// Optional hallucination inputs: generated outputs and reference facts
	// keyed by prompt.
	ModelOutputs   map[string]string
	ReferenceFacts map[string]string
}

// AuditSummary is the roll-up across all analyses
type AuditSummary struct {
	OverallStatus   string   `json:"overall_status"` // PASSED or FAILED
	RiskLevel       string   `json:"risk_level"`     // LOW, MEDIUM, HIGH
	IssuesFound     []string `json:"issues_found"`
	Recommendations []string `json:"recommendations"`
	ComplianceScore float64  `json:"compliance_score"` // 0-100
}

// FullAuditResult aggregates every analysis of one combined audit
type FullAuditResult struct {
	Bias          *audit.Report            `json:"bias"`
	BiasRendered  string                   `json:"bias_rendered"`
	Privacy       *privacy.Report          `json:"privacy"`
	Profile       *profile.DatasetProfile  `json:"profile"`
	Hallucination []similarity.CheckResult `json:"hallucination,omitempty"`
	Summary       AuditSummary             `json:"summary"`
}

// AuditService orchestrates the bias engine with the privacy scanner,
// dataset profiler and hallucination checks, and persists the result.
type AuditService struct {
	engine     *engine.Engine
	analyzer   *privacy.Analyzer
	profiler   *profile.Computer
	checker    *similarity.Scorer
	repository ports.ReportRepositoryPort
	logger     *internal.Logger

	hallucinationThreshold float64
}

// NewAuditService wires the audit pipeline. Repository may be nil when the
// caller does not want persistence.
func NewAuditService(eng *engine.Engine, repository ports.ReportRepositoryPort, logger *internal.Logger) *AuditService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &AuditService{
		engine:     eng,
		analyzer:   privacy.NewAnalyzer(),
		profiler:   profile.NewComputer(),
		checker:    similarity.NewScorer(),
		repository: repository,
		logger:     logger,

		hallucinationThreshold: 0.3,
	}
}

// RunBiasAudit runs only the fairness core and persists the rendered report
func (s *AuditService) RunBiasAudit(ctx context.Context, ds *table.Dataset, label table.LabelSpec, attrs []string) (*audit.Report, string, error) {
	report, err := s.engine.Run(ctx, ds, label, attrs)
	if err != nil {
		return nil, "", errors.Wrap(err, "bias audit failed")
	}
	rendered := render.Text(report)
	if s.repository != nil {
		if err := s.repository.Save(ctx, ports.StoredReport{Report: report, Rendered: rendered}); err != nil {
			// Persistence is best effort; the report value is still returned.
			s.logger.Error("failed to persist report %s: %v", report.ID, err)
		}
	}
	return report, rendered, nil
}

// RunFullAudit runs bias, privacy, profile and hallucination analyses over
// one dataset. The three dataset analyses are independent reads of the same
// immutable input, so they fan out concurrently; the bias engine itself stays
// synchronous inside its goroutine.
func (s *AuditService) RunFullAudit(ctx context.Context, req FullAuditRequest) (*FullAuditResult, error) {
	result := &FullAuditResult{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		report, rendered, err := s.RunBiasAudit(gctx, req.Dataset, req.Label, req.ProtectedAttributes)
		if err != nil {
			return err
		}
		result.Bias = report
		result.BiasRendered = rendered
		return nil
	})

	g.Go(func() error {
		result.Privacy = s.analyzer.AnalyzeDataset(req.Dataset)
		return nil
	})

	g.Go(func() error {
		columns := append([]string{req.Label.Column}, req.ProtectedAttributes...)
		p, err := s.profiler.Profile(req.Dataset, columns)
		if err != nil {
			return errors.Wrap(err, "dataset profiling failed")
		}
		result.Profile = p
		return nil
	})

	if len(req.ModelOutputs) > 0 {
		g.Go(func() error {
			result.Hallucination = s.checker.CheckAll(req.ModelOutputs, req.ReferenceFacts, s.hallucinationThreshold)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Summary = s.summarize(result)
	return result, nil
}

// summarize rolls the individual analyses into one verdict and a compliance
// score. Bias costs 40 points, PII 20, hallucinations 30; the weighting
// follows how consequential each issue class is for a deployed system.
func (s *AuditService) summarize(result *FullAuditResult) AuditSummary {
	summary := AuditSummary{
		OverallStatus:   "PASSED",
		RiskLevel:       "LOW",
		ComplianceScore: 100,
	}

	if result.Bias != nil && result.Bias.HasViolation() {
		summary.IssuesFound = append(summary.IssuesFound, "Potential bias detected")
		summary.OverallStatus = "FAILED"
		summary.RiskLevel = "HIGH"
		summary.ComplianceScore -= 40
	}

	if result.Privacy != nil && result.Privacy.HasPII() {
		summary.IssuesFound = append(summary.IssuesFound, "PII detected in dataset")
		if summary.RiskLevel == "LOW" {
			summary.RiskLevel = "MEDIUM"
		}
		summary.ComplianceScore -= 20
	}

	if rate := similarity.HallucinationRate(result.Hallucination); rate > 0.2 {
		summary.IssuesFound = append(summary.IssuesFound, "High hallucination rate detected")
		summary.OverallStatus = "FAILED"
		summary.ComplianceScore -= 30
	}

	if summary.ComplianceScore < 0 {
		summary.ComplianceScore = 0
	}

	if len(summary.IssuesFound) > 0 {
		summary.Recommendations = []string{
			"Review and address identified bias patterns",
			"Implement data anonymization for PII",
			"Add fact-checking mechanisms for model outputs",
		}
	} else {
		summary.Recommendations = []string{
			"Continue monitoring for emerging issues",
			"Regular re-auditing recommended",
		}
	}

	return summary
}
