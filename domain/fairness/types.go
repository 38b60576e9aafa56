package fairness

// GroupSummary holds per-group counts for one category of a protected
// attribute. Rate is Positives/Total and is only meaningful when Total > 0;
// groups are derived from observed data so Total is never zero in practice.
type GroupSummary struct {
	Category  string  `json:"category"`
	Total     int     `json:"total_cases"`
	Positives int     `json:"approvals"`
	Rate      float64 `json:"approval_rate"`
}

// SelectionRate is the proportion of a group meeting the selection predicate.
// It is computed on a separate basis from GroupSummary.Rate (predicted vs.
// actual outcome) and the two are reported side by side, never reconciled.
type SelectionRate struct {
	Category string  `json:"category"`
	Rate     float64 `json:"selection_rate"`
}

// IndependenceTest carries a chi-square test of independence between the
// protected attribute and the outcome, as supplemental evidence.
type IndependenceTest struct {
	Statistic        float64 `json:"statistic"`
	DegreesOfFreedom int     `json:"degrees_of_freedom"`
	PValue           float64 `json:"p_value"`
}

// Metrics is the computed fairness metrics subset for one attribute
type Metrics struct {
	DisparateImpactRatio    float64           `json:"disparate_impact_ratio"`
	DemographicParityDiff   float64           `json:"demographic_parity_difference"`
	ZeroRateConvention      bool              `json:"zero_rate_convention"` // true when ratio defaulted to 1.0 because all rates were 0
	Independence            *IndependenceTest `json:"independence,omitempty"`
}

// ResultStatus marks whether an attribute's analysis completed
type ResultStatus string

const (
	StatusOK       ResultStatus = "ok"
	StatusDegraded ResultStatus = "degraded"
)

// Result is the complete fairness analysis for one protected attribute.
// A degraded result keeps whatever was computed before the failure plus the
// reason, so the report can enumerate what succeeded and why the rest did not.
type Result struct {
	Attribute      string          `json:"attribute"`
	Groups         []GroupSummary  `json:"groups"`
	SelectionRates []SelectionRate `json:"selection_rates,omitempty"`
	Metrics        Metrics         `json:"metrics"`
	Verdict        Verdict         `json:"verdict"`
	Status         ResultStatus    `json:"status"`
	DegradedReason string          `json:"degraded_reason,omitempty"`
}

// Degraded returns true if the attribute's analysis did not complete
func (r *Result) Degraded() bool {
	return r.Status == StatusDegraded
}
