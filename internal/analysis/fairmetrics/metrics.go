package fairmetrics

import (
	"fairlens/domain/core"
	"fairlens/domain/fairness"
)

// Compute derives the disparate impact ratio and demographic parity difference
// from group summaries and their selection rates. At least two non-empty
// groups are required; anything less cannot express a disparity.
//
// When the max positive rate is 0 the ratio is defined as 1.0: both groups are
// equally at zero, so no disparity is detectable. This is a deliberate
// convention, not a masked division error, and it is flagged on the metrics.
func Compute(groups []fairness.GroupSummary, selectionRates []fairness.SelectionRate) (fairness.Metrics, error) {
	nonEmpty := 0
	for _, g := range groups {
		if g.Total > 0 {
			nonEmpty++
		}
	}
	if nonEmpty < 2 {
		return fairness.Metrics{}, core.ErrInsufficientData
	}

	minRate, maxRate := groups[0].Rate, groups[0].Rate
	for _, g := range groups[1:] {
		if g.Rate < minRate {
			minRate = g.Rate
		}
		if g.Rate > maxRate {
			maxRate = g.Rate
		}
	}

	metrics := fairness.Metrics{}
	if maxRate == 0 {
		metrics.DisparateImpactRatio = 1.0
		metrics.ZeroRateConvention = true
	} else {
		metrics.DisparateImpactRatio = minRate / maxRate
	}

	if len(selectionRates) > 0 {
		minSel, maxSel := selectionRates[0].Rate, selectionRates[0].Rate
		for _, s := range selectionRates[1:] {
			if s.Rate < minSel {
				minSel = s.Rate
			}
			if s.Rate > maxSel {
				maxSel = s.Rate
			}
		}
		metrics.DemographicParityDiff = maxSel - minSel
	}

	return metrics, nil
}
