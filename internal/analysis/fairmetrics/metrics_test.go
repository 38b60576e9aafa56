package fairmetrics

import (
	"math"
	"testing"

	"fairlens/domain/core"
	"fairlens/domain/fairness"
)

func summaries(entries ...[3]int) []fairness.GroupSummary {
	groups := make([]fairness.GroupSummary, len(entries))
	for i, e := range entries {
		total, positives := e[1], e[2]
		rate := 0.0
		if total > 0 {
			rate = float64(positives) / float64(total)
		}
		groups[i] = fairness.GroupSummary{
			Category:  string(rune('A' + e[0])),
			Total:     total,
			Positives: positives,
			Rate:      rate,
		}
	}
	return groups
}

func selRatesFrom(groups []fairness.GroupSummary) []fairness.SelectionRate {
	rates := make([]fairness.SelectionRate, len(groups))
	for i, g := range groups {
		rates[i] = fairness.SelectionRate{Category: g.Category, Rate: g.Rate}
	}
	return rates
}

func TestCompute_CanonicalGenderScenario(t *testing.T) {
	// Female 102/468 approvals, Male 398/532.
	groups := summaries([3]int{0, 468, 102}, [3]int{1, 532, 398})

	metrics, err := Compute(groups, selRatesFrom(groups))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	femaleRate := 102.0 / 468.0
	maleRate := 398.0 / 532.0
	wantRatio := femaleRate / maleRate

	if math.Abs(metrics.DisparateImpactRatio-wantRatio) > 1e-9 {
		t.Errorf("ratio = %v, want %v", metrics.DisparateImpactRatio, wantRatio)
	}
	if metrics.DisparateImpactRatio >= 0.8 {
		t.Errorf("ratio %v should be below the four-fifths threshold", metrics.DisparateImpactRatio)
	}
	// Rounded to 4 decimals the rates are 0.2179 and 0.7481, ratio about 0.2913.
	if math.Abs(metrics.DisparateImpactRatio-0.2913) > 0.001 {
		t.Errorf("ratio = %v, want about 0.2913", metrics.DisparateImpactRatio)
	}

	wantDiff := maleRate - femaleRate
	if math.Abs(metrics.DemographicParityDiff-wantDiff) > 1e-9 {
		t.Errorf("parity difference = %v, want %v", metrics.DemographicParityDiff, wantDiff)
	}
}

func TestCompute_EqualRates(t *testing.T) {
	groups := summaries([3]int{0, 100, 50}, [3]int{1, 200, 100})

	metrics, err := Compute(groups, selRatesFrom(groups))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if metrics.DisparateImpactRatio != 1.0 {
		t.Errorf("equal rates ratio = %v, want 1.0", metrics.DisparateImpactRatio)
	}
	if metrics.DemographicParityDiff != 0.0 {
		t.Errorf("equal rates parity difference = %v, want 0.0", metrics.DemographicParityDiff)
	}
}

func TestCompute_AllZeroRatesUsesConvention(t *testing.T) {
	groups := summaries([3]int{0, 40, 0}, [3]int{1, 60, 0})

	metrics, err := Compute(groups, selRatesFrom(groups))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if metrics.DisparateImpactRatio != 1.0 {
		t.Errorf("all-zero ratio = %v, want 1.0 by convention", metrics.DisparateImpactRatio)
	}
	if !metrics.ZeroRateConvention {
		t.Error("zero-rate convention flag should be set")
	}
}

func TestCompute_RatioAlwaysInUnitRange(t *testing.T) {
	scenarios := [][]fairness.GroupSummary{
		summaries([3]int{0, 10, 1}, [3]int{1, 10, 9}),
		summaries([3]int{0, 500, 499}, [3]int{1, 3, 1}),
		summaries([3]int{0, 7, 0}, [3]int{1, 9, 9}),
		summaries([3]int{0, 50, 25}, [3]int{1, 50, 25}, [3]int{2, 10, 1}),
	}
	for i, groups := range scenarios {
		metrics, err := Compute(groups, selRatesFrom(groups))
		if err != nil {
			t.Fatalf("scenario %d failed: %v", i, err)
		}
		if metrics.DisparateImpactRatio < 0 || metrics.DisparateImpactRatio > 1 {
			t.Errorf("scenario %d ratio = %v, outside [0,1]", i, metrics.DisparateImpactRatio)
		}
	}
}

func TestCompute_SingleGroupInsufficient(t *testing.T) {
	groups := summaries([3]int{0, 100, 30})

	_, err := Compute(groups, selRatesFrom(groups))
	if err == nil {
		t.Fatal("expected insufficient data error")
	}
	if !core.IsInsufficientData(err) {
		t.Errorf("error = %v, want insufficient data", err)
	}
}

func TestIndependenceTest_StrongAssociation(t *testing.T) {
	groups := summaries([3]int{0, 468, 102}, [3]int{1, 532, 398})

	test := IndependenceTest(groups)
	if test == nil {
		t.Fatal("expected independence test result")
	}
	if test.DegreesOfFreedom != 1 {
		t.Errorf("dof = %d, want 1", test.DegreesOfFreedom)
	}
	if test.PValue < 0 || test.PValue > 1 {
		t.Fatalf("p-value = %v, outside [0,1]", test.PValue)
	}
	// This disparity is far beyond chance.
	if test.PValue > 0.001 {
		t.Errorf("p-value = %v, want well below 0.001", test.PValue)
	}
	if test.Statistic <= 0 {
		t.Errorf("statistic = %v, want positive", test.Statistic)
	}
}

func TestIndependenceTest_DegenerateTable(t *testing.T) {
	// All positives zero: outcome column has no variation, test undefined.
	groups := summaries([3]int{0, 40, 0}, [3]int{1, 60, 0})
	if test := IndependenceTest(groups); test != nil {
		t.Errorf("degenerate table should yield nil, got %+v", test)
	}
}
