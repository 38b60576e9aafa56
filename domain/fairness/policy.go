package fairness

import (
	"fairlens/domain/core"
)

// Verdict classifies a disparate impact ratio against a threshold policy
type Verdict string

const (
	VerdictCompliant Verdict = "COMPLIANT"
	VerdictWarning   Verdict = "WARNING"
	VerdictViolation Verdict = "VIOLATION"
)

// Policy encodes the regulatory threshold for disparate impact. The default
// threshold of 0.8 is the legal four-fifths rule; callers may override it per
// jurisdiction. WarnBand optionally widens the compliant boundary into a
// warning band: ratios in [Threshold, Threshold+WarnBand) classify as WARNING.
// With the default WarnBand of 0 a ratio of exactly Threshold is COMPLIANT.
type Policy struct {
	Threshold float64 `json:"threshold"`
	WarnBand  float64 `json:"warn_band"`
}

// DefaultPolicy returns the four-fifths rule with no warning band
func DefaultPolicy() Policy {
	return Policy{Threshold: 0.8}
}

// Classify maps a disparate impact ratio to a verdict. A ratio outside [0,1]
// indicates an upstream arithmetic bug and is surfaced as an invariant
// violation rather than clamped.
func (p Policy) Classify(ratio float64) (Verdict, error) {
	if ratio < 0 || ratio > 1 {
		return "", core.NewInvariantViolation("disparate_impact_ratio", ratio)
	}
	if ratio < p.Threshold {
		return VerdictViolation, nil
	}
	if p.WarnBand > 0 && ratio < p.Threshold+p.WarnBand {
		return VerdictWarning, nil
	}
	return VerdictCompliant, nil
}
