package audit

import (
	"testing"

	"fairlens/domain/fairness"
)

func sampleResults() []fairness.Result {
	return []fairness.Result{
		{
			Attribute: "gender",
			Groups: []fairness.GroupSummary{
				{Category: "Female", Total: 468, Positives: 102, Rate: 0.2179},
				{Category: "Male", Total: 532, Positives: 398, Rate: 0.7481},
			},
			Metrics: fairness.Metrics{DisparateImpactRatio: 0.2913, DemographicParityDiff: 0.5302},
			Verdict: fairness.VerdictViolation,
			Status:  fairness.StatusOK,
		},
		{
			Attribute:      "race",
			Status:         fairness.StatusDegraded,
			DegradedReason: "insufficient data: fewer than two non-empty groups",
		},
	}
}

func TestBuild(t *testing.T) {
	meta := Metadata{DatasetRows: 1000, LabelColumn: "approved", Threshold: 0.8}
	report := Build(sampleResults(), meta)

	if report.ID == "" {
		t.Error("report should carry an ID")
	}
	if report.CreatedAt.Time().IsZero() {
		t.Error("report should carry a build timestamp")
	}
	if len(report.Results) != 2 {
		t.Fatalf("results: got %d, want 2", len(report.Results))
	}
	if report.Results[0].Attribute != "gender" || report.Results[1].Attribute != "race" {
		t.Error("results must keep caller-supplied attribute order")
	}
}

func TestReport_Rollups(t *testing.T) {
	report := Build(sampleResults(), Metadata{DatasetRows: 1000, LabelColumn: "approved", Threshold: 0.8})

	if !report.HasViolation() {
		t.Error("report with a VIOLATION result should report a violation")
	}
	degraded := report.Degraded()
	if len(degraded) != 1 || degraded[0].Attribute != "race" {
		t.Errorf("degraded: got %v, want only race", degraded)
	}
}

func TestFingerprint_ExcludesIDAndTimestamp(t *testing.T) {
	meta := Metadata{DatasetRows: 1000, LabelColumn: "approved", Threshold: 0.8}
	a := Build(sampleResults(), meta)
	b := Build(sampleResults(), meta)

	if a.ID == b.ID {
		t.Error("two builds should produce distinct IDs")
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("fingerprints of identical content should match")
	}
}

func TestFingerprint_ContentSensitive(t *testing.T) {
	meta := Metadata{DatasetRows: 1000, LabelColumn: "approved", Threshold: 0.8}
	a := Build(sampleResults(), meta)

	other := sampleResults()
	other[0].Metrics.DisparateImpactRatio = 0.95
	other[0].Verdict = fairness.VerdictCompliant
	b := Build(other, meta)

	if a.Fingerprint() == b.Fingerprint() {
		t.Error("different result content should change the fingerprint")
	}
}
