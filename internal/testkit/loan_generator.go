package testkit

import (
	"fmt"
	"math/rand"

	"fairlens/domain/table"
)

// Canonical loan-decision group counts used across tests and demos. The
// gender split reproduces the reference scenario: Female approval rate
// 102/468 (0.2179), Male 398/532 (0.7481), disparate impact ratio ~0.2913.
const (
	femaleTotal    = 468
	femalePositive = 102
	maleTotal      = 532
	malePositive   = 398
)

// LoanDatasetColumns is the column order of the synthetic loan dataset
var LoanDatasetColumns = []string{"gender", "race", "age", "income", "approved", "predicted"}

// NewLoanDataset generates the synthetic loan-decision dataset used for
// demos and tests. Generation is deterministic for a given seed: same seed,
// same records in the same order.
func NewLoanDataset(seed int64) *table.Dataset {
	rng := rand.New(rand.NewSource(seed))

	records := make([]table.Record, 0, femaleTotal+maleTotal)
	records = append(records, genderBlock(rng, "Female", femaleTotal, femalePositive)...)
	records = append(records, genderBlock(rng, "Male", maleTotal, malePositive)...)

	// Deterministic shuffle so groups interleave like real data while the
	// group counts stay exact.
	rng.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})

	return table.New(LoanDatasetColumns, records)
}

func genderBlock(rng *rand.Rand, gender string, total, positives int) []table.Record {
	races := []string{"White", "Black", "Asian", "Hispanic"}
	records := make([]table.Record, total)
	for i := 0; i < total; i++ {
		approved := "0"
		if i < positives {
			approved = "1"
		}
		// The predicted outcome mostly tracks the actual label but flips a
		// small share of rows, so selection rates diverge from approval
		// rates the way the reference output shows.
		predicted := approved
		if rng.Float64() < 0.05 {
			if predicted == "1" {
				predicted = "0"
			} else {
				predicted = "1"
			}
		}
		records[i] = table.Record{
			"gender":    gender,
			"race":      races[rng.Intn(len(races))],
			"age":       fmt.Sprintf("%d", 21+rng.Intn(50)),
			"income":    fmt.Sprintf("%d", 20000+rng.Intn(130000)),
			"approved":  approved,
			"predicted": predicted,
		}
	}
	return records
}

// LoanLabel is the label spec for the synthetic loan dataset
func LoanLabel() table.LabelSpec {
	return table.LabelSpec{Column: "approved", Positive: "1"}
}

// NewSingleGroupDataset builds a dataset whose protected attribute has only
// one observed category, for degraded-result scenarios.
func NewSingleGroupDataset(rows int) *table.Dataset {
	records := make([]table.Record, rows)
	for i := 0; i < rows; i++ {
		approved := "0"
		if i%3 == 0 {
			approved = "1"
		}
		records[i] = table.Record{"gender": "Female", "approved": approved}
	}
	return table.New([]string{"gender", "approved"}, records)
}
