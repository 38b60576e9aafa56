package audit

import (
	"encoding/json"
	"fmt"
	"strings"

	"fairlens/domain/core"
	"fairlens/domain/fairness"
)

// Metadata describes the dataset an audit ran over
type Metadata struct {
	DatasetRows int     `json:"dataset_rows"`
	LabelColumn string  `json:"label_column"`
	Threshold   float64 `json:"threshold"`
}

// Report aggregates per-attribute fairness results for one audit invocation.
// It is created once per run and never mutated afterwards: CreatedAt is fixed
// at build time and rendering derives everything from the stored value.
type Report struct {
	ID        core.ReportID     `json:"id"`
	CreatedAt core.Timestamp    `json:"created_at"`
	Metadata  Metadata          `json:"metadata"`
	Results   []fairness.Result `json:"results"`
}

// Build assembles a report from accumulated results. Results keep the
// caller-supplied attribute order so rendering is reproducible.
func Build(results []fairness.Result, meta Metadata) *Report {
	return &Report{
		ID:        core.ReportID(core.NewID()),
		CreatedAt: core.Now(),
		Metadata:  meta,
		Results:   results,
	}
}

// Degraded returns the results whose analysis did not complete
func (r *Report) Degraded() []fairness.Result {
	var degraded []fairness.Result
	for _, res := range r.Results {
		if res.Degraded() {
			degraded = append(degraded, res)
		}
	}
	return degraded
}

// HasViolation reports whether any attribute's verdict is a violation
func (r *Report) HasViolation() bool {
	for _, res := range r.Results {
		if res.Verdict == fairness.VerdictViolation {
			return true
		}
	}
	return false
}

// Fingerprint hashes the report content excluding ID and CreatedAt, so two
// runs over the same immutable dataset produce equal fingerprints.
func (r *Report) Fingerprint() core.Fingerprint {
	var b strings.Builder
	fmt.Fprintf(&b, "rows=%d label=%s threshold=%g\n", r.Metadata.DatasetRows, r.Metadata.LabelColumn, r.Metadata.Threshold)
	for _, res := range r.Results {
		payload, _ := json.Marshal(res)
		b.Write(payload)
		b.WriteByte('\n')
	}
	return core.NewFingerprint([]byte(b.String()))
}
