package render

import (
	"strings"
	"testing"

	"fairlens/domain/audit"
	"fairlens/domain/fairness"
)

func sampleReport() *audit.Report {
	results := []fairness.Result{
		{
			Attribute: "gender",
			Groups: []fairness.GroupSummary{
				{Category: "Female", Total: 468, Positives: 102, Rate: 102.0 / 468.0},
				{Category: "Male", Total: 532, Positives: 398, Rate: 398.0 / 532.0},
			},
			SelectionRates: []fairness.SelectionRate{
				{Category: "Female", Rate: 102.0 / 468.0},
				{Category: "Male", Rate: 398.0 / 532.0},
			},
			Metrics: fairness.Metrics{
				DisparateImpactRatio:  (102.0 / 468.0) / (398.0 / 532.0),
				DemographicParityDiff: 398.0/532.0 - 102.0/468.0,
			},
			Verdict: fairness.VerdictViolation,
			Status:  fairness.StatusOK,
		},
		{
			Attribute:      "nationality",
			Status:         fairness.StatusDegraded,
			DegradedReason: "insufficient data for analysis",
		},
	}
	return audit.Build(results, audit.Metadata{DatasetRows: 1000, LabelColumn: "approved", Threshold: 0.8})
}

func TestText_SectionOrderAndFields(t *testing.T) {
	out := Text(sampleReport())

	wantInOrder := []string{
		"=== BASIC BIAS ANALYSIS ===",
		"--- Analysis for gender ---",
		"total_cases",
		"Female",
		"0.2179",
		"Male",
		"0.7481",
		"Disparate Impact Ratio: 0.291",
		"WARNING: Potential bias detected! (Ratio < 0.8)",
		"--- Analysis for nationality ---",
		"[degraded] insufficient data for analysis",
		"=== FAIRLEARN-STYLE ANALYSIS ===",
		"Selection rates by group:",
		"Demographic Parity Difference: 0.5302",
	}

	pos := 0
	for _, want := range wantInOrder {
		idx := strings.Index(out[pos:], want)
		if idx < 0 {
			t.Fatalf("output missing %q after position %d\nfull output:\n%s", want, pos, out)
		}
		pos += idx
	}
}

func TestText_CompliantLine(t *testing.T) {
	report := sampleReport()
	report.Results[0].Verdict = fairness.VerdictCompliant
	report.Results[0].Metrics.DisparateImpactRatio = 0.93

	out := Text(report)
	if !strings.Contains(out, "No significant bias detected (Ratio >= 0.8)") {
		t.Errorf("compliant report should carry the no-bias line:\n%s", out)
	}
	if strings.Contains(out, "WARNING: Potential bias detected") {
		t.Errorf("compliant report should not warn:\n%s", out)
	}
}

func TestText_Deterministic(t *testing.T) {
	report := sampleReport()
	if Text(report) != Text(report) {
		t.Error("rendering the same report twice should be byte-identical")
	}
}

func TestMarkdown_StructureAndDegraded(t *testing.T) {
	out := Markdown(sampleReport())

	for _, want := range []string{
		"# Bias Audit Report",
		"## Basic Bias Analysis",
		"### gender",
		"| Female | 468 | 102 | 0.2179 |",
		"**Degraded:** insufficient data for analysis",
		"## Fairlearn-Style Analysis",
		"Demographic Parity Difference: **0.5302**",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\nfull output:\n%s", want, out)
		}
	}
	// The degraded attribute has nothing to tabulate in the second section.
	if strings.Contains(out, "### nationality\n\n| category | selection_rate |") {
		t.Error("degraded attribute should be skipped in fairlearn-style section")
	}
}
