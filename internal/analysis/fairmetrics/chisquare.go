package fairmetrics

import (
	"gonum.org/v1/gonum/stat/distuv"

	"fairlens/domain/fairness"
)

// IndependenceTest runs a chi-square test of independence between the
// protected attribute and the binary outcome, from the same group summaries
// the fairness metrics use. It is supplemental evidence: a low p-value says
// the outcome distribution differs across groups beyond chance.
func IndependenceTest(groups []fairness.GroupSummary) *fairness.IndependenceTest {
	if len(groups) < 2 {
		return nil
	}

	grandTotal, totalPositives := 0, 0
	for _, g := range groups {
		grandTotal += g.Total
		totalPositives += g.Positives
	}
	totalNegatives := grandTotal - totalPositives
	if grandTotal == 0 || totalPositives == 0 || totalNegatives == 0 {
		// Degenerate contingency table, test undefined.
		return nil
	}

	// 2 x k contingency table: observed vs expected under independence.
	statistic := 0.0
	for _, g := range groups {
		expectedPos := float64(g.Total) * float64(totalPositives) / float64(grandTotal)
		expectedNeg := float64(g.Total) * float64(totalNegatives) / float64(grandTotal)
		if expectedPos == 0 || expectedNeg == 0 {
			continue
		}
		obsPos := float64(g.Positives)
		obsNeg := float64(g.Total - g.Positives)
		statistic += (obsPos - expectedPos) * (obsPos - expectedPos) / expectedPos
		statistic += (obsNeg - expectedNeg) * (obsNeg - expectedNeg) / expectedNeg
	}

	dof := len(groups) - 1
	chi := distuv.ChiSquared{K: float64(dof)}
	pValue := chi.Survival(statistic)
	if pValue < 0 {
		pValue = 0
	}
	if pValue > 1 {
		pValue = 1
	}

	return &fairness.IndependenceTest{
		Statistic:        statistic,
		DegreesOfFreedom: dof,
		PValue:           pValue,
	}
}
