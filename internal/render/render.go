// Package render formats audit reports. The report value is the single source
// of truth: Text and Markdown both derive from the same structured data, and
// output is deterministic for a given report (the timestamp is fixed at build
// time, never re-derived here).
package render

import (
	"fmt"
	"strings"

	"fairlens/domain/audit"
	"fairlens/domain/fairness"
)

// Text renders the report in the audit tool's established plain-text layout.
// Consumers expect byte-stable output, so field order is fixed: the basic
// analysis block per attribute, then the fairlearn-style block per attribute.
func Text(report *audit.Report) string {
	var b strings.Builder

	b.WriteString("=== BASIC BIAS ANALYSIS ===\n")
	for _, result := range report.Results {
		fmt.Fprintf(&b, "\n--- Analysis for %s ---\n", result.Attribute)
		if result.Degraded() && len(result.Groups) == 0 {
			fmt.Fprintf(&b, "[degraded] %s\n", result.DegradedReason)
			continue
		}
		writeGroupTable(&b, result.Groups)
		if result.Degraded() {
			fmt.Fprintf(&b, "[degraded] %s\n", result.DegradedReason)
			continue
		}
		fmt.Fprintf(&b, "\nDisparate Impact Ratio: %.3f\n", result.Metrics.DisparateImpactRatio)
		switch result.Verdict {
		case fairness.VerdictCompliant:
			fmt.Fprintf(&b, "✅ No significant bias detected (Ratio >= %.1f)\n", report.Metadata.Threshold)
		case fairness.VerdictWarning:
			fmt.Fprintf(&b, "⚠️  CAUTION: Ratio is inside the warning band above %.1f\n", report.Metadata.Threshold)
		default:
			fmt.Fprintf(&b, "⚠️  WARNING: Potential bias detected! (Ratio < %.1f)\n", report.Metadata.Threshold)
		}
	}

	b.WriteString("\n=== FAIRLEARN-STYLE ANALYSIS ===\n")
	for _, result := range report.Results {
		fmt.Fprintf(&b, "\n--- Analysis for %s ---\n", result.Attribute)
		if result.Degraded() {
			fmt.Fprintf(&b, "[degraded] %s\n", result.DegradedReason)
			continue
		}
		b.WriteString("Selection rates by group:\n")
		for _, s := range result.SelectionRates {
			fmt.Fprintf(&b, "%-12s %.4f\n", s.Category, s.Rate)
		}
		fmt.Fprintf(&b, "Demographic Parity Difference: %.4f\n", result.Metrics.DemographicParityDiff)
	}

	return b.String()
}

func writeGroupTable(b *strings.Builder, groups []fairness.GroupSummary) {
	width := len("category")
	for _, g := range groups {
		if len(g.Category) > width {
			width = len(g.Category)
		}
	}
	fmt.Fprintf(b, "%-*s  %11s  %9s  %13s\n", width, "category", "total_cases", "approvals", "approval_rate")
	for _, g := range groups {
		fmt.Fprintf(b, "%-*s  %11d  %9d  %13.4f\n", width, g.Category, g.Total, g.Positives, g.Rate)
	}
}

// Markdown renders the same structure as a markdown document, for consumers
// that present reports visually.
func Markdown(report *audit.Report) string {
	var b strings.Builder

	b.WriteString("# Bias Audit Report\n\n")
	fmt.Fprintf(&b, "- Generated: %s\n", report.CreatedAt.String())
	fmt.Fprintf(&b, "- Dataset rows: %d\n", report.Metadata.DatasetRows)
	fmt.Fprintf(&b, "- Label column: `%s`\n", report.Metadata.LabelColumn)
	fmt.Fprintf(&b, "- Disparate impact threshold: %.2f\n", report.Metadata.Threshold)

	b.WriteString("\n## Basic Bias Analysis\n")
	for _, result := range report.Results {
		fmt.Fprintf(&b, "\n### %s\n\n", result.Attribute)
		if result.Degraded() {
			fmt.Fprintf(&b, "**Degraded:** %s\n", result.DegradedReason)
			continue
		}
		b.WriteString("| category | total_cases | approvals | approval_rate |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, g := range result.Groups {
			fmt.Fprintf(&b, "| %s | %d | %d | %.4f |\n", g.Category, g.Total, g.Positives, g.Rate)
		}
		fmt.Fprintf(&b, "\nDisparate Impact Ratio: **%.3f** (%s)\n", result.Metrics.DisparateImpactRatio, result.Verdict)
		if test := result.Metrics.Independence; test != nil {
			fmt.Fprintf(&b, "\nChi-square independence: statistic %.3f, dof %d, p-value %.4g\n",
				test.Statistic, test.DegreesOfFreedom, test.PValue)
		}
	}

	b.WriteString("\n## Fairlearn-Style Analysis\n")
	for _, result := range report.Results {
		if result.Degraded() {
			continue
		}
		fmt.Fprintf(&b, "\n### %s\n\n", result.Attribute)
		b.WriteString("| category | selection_rate |\n")
		b.WriteString("|---|---|\n")
		for _, s := range result.SelectionRates {
			fmt.Fprintf(&b, "| %s | %.4f |\n", s.Category, s.Rate)
		}
		fmt.Fprintf(&b, "\nDemographic Parity Difference: **%.4f**\n", result.Metrics.DemographicParityDiff)
	}

	return b.String()
}
