package privacy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairlens/domain/table"
)

func TestAnalyzeDataset_DetectsEmailAndSSN(t *testing.T) {
	records := []table.Record{
		{"contact": "reach me at jane.doe@example.com", "notes": "ssn 123-45-6789", "amount": "100"},
		{"contact": "no contact info", "notes": "clean", "amount": "250"},
		{"contact": "bob@corp.org is the backup", "notes": "also clean", "amount": "300"},
	}
	ds := table.New([]string{"contact", "notes", "amount"}, records)

	report := NewAnalyzer().AnalyzeDataset(ds)
	require.True(t, report.HasPII())

	byColumnKind := map[string]int{}
	for _, f := range report.Findings {
		byColumnKind[f.Column+"/"+f.Kind] = f.Matches
	}
	assert.Equal(t, 2, byColumnKind["contact/email"])
	assert.Equal(t, 1, byColumnKind["notes/ssn"])
	assert.Contains(t, report.Recommendations, "Remove or encrypt detected PII before model training")
}

func TestAnalyzeDataset_QuasiIdentifiers(t *testing.T) {
	records := []table.Record{
		{"gender": "Female", "age": "34", "annual_income": "52000", "score": "0.4"},
		{"gender": "Male", "age": "29", "annual_income": "61000", "score": "0.7"},
	}
	ds := table.New([]string{"gender", "age", "annual_income", "score"}, records)

	report := NewAnalyzer().AnalyzeDataset(ds)

	assert.ElementsMatch(t, []string{"gender", "age", "annual_income"}, report.QuasiIdentifiers)
	assert.NotContains(t, report.QuasiIdentifiers, "score")
}

func TestAnalyzeDataset_UniquenessRisk(t *testing.T) {
	records := make([]table.Record, 20)
	for i := range records {
		records[i] = table.Record{
			"customer_ref": fmt.Sprintf("ref-%03d", i), // fully unique
			"segment":      "retail",                   // constant
		}
	}
	ds := table.New([]string{"customer_ref", "segment"}, records)

	report := NewAnalyzer().AnalyzeDataset(ds)

	assert.InDelta(t, 1.0, report.UniquenessRisk["customer_ref"], 1e-9)
	assert.InDelta(t, 0.05, report.UniquenessRisk["segment"], 1e-9)
	require.NotEmpty(t, report.Recommendations)
	assert.Contains(t, report.Recommendations[len(report.Recommendations)-1], "customer_ref")
}
