// Package privacy scans datasets for re-identification risk: direct PII in
// text columns, quasi-identifier columns, and uniqueness of values.
package privacy

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"fairlens/domain/table"
)

// Finding describes PII detected in a single column
type Finding struct {
	Column  string `json:"column"`
	Kind    string `json:"kind"`
	Matches int    `json:"matches"`
}

// Report is the structured result of a privacy scan
type Report struct {
	Findings         []Finding          `json:"findings"`
	QuasiIdentifiers []string           `json:"quasi_identifiers"`
	UniquenessRisk   map[string]float64 `json:"uniqueness_risk"`
	Recommendations  []string           `json:"recommendations"`
}

// HasPII reports whether any direct identifiers were found
func (r *Report) HasPII() bool {
	return len(r.Findings) > 0
}

// Analyzer scans datasets for privacy risks. Patterns are compiled once at
// construction.
type Analyzer struct {
	patterns                map[string]*regexp.Regexp
	quasiIdentifierKeywords map[string][]string
}

// NewAnalyzer creates an analyzer with the standard PII patterns
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		patterns: map[string]*regexp.Regexp{
			"email":       regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
			"phone":       regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`),
			"ssn":         regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
			"credit_card": regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`),
			"zipcode":     regexp.MustCompile(`\b\d{5}(-\d{4})?\b`),
		},
		quasiIdentifierKeywords: map[string][]string{
			"age":          {"age", "birth_year", "dob"},
			"location":     {"zip", "zipcode", "city", "state", "address", "location"},
			"demographic":  {"gender", "race", "ethnicity", "marital_status"},
			"professional": {"job_title", "employer", "salary", "income"},
			"temporal":     {"date", "timestamp", "time"},
		},
	}
}

// AnalyzeDataset runs the full scan: PII patterns over categorical columns,
// quasi-identifier column-name heuristics, and uniqueness risk.
func (a *Analyzer) AnalyzeDataset(ds *table.Dataset) *Report {
	report := &Report{
		UniquenessRisk: make(map[string]float64),
	}

	columns := ds.Columns()
	sort.Strings(columns)

	for _, col := range columns {
		if ds.Schema[col] == table.TypeCategorical {
			report.Findings = append(report.Findings, a.scanColumn(ds, col)...)
		}
		report.UniquenessRisk[col] = uniquenessRatio(ds, col)
	}

	report.QuasiIdentifiers = a.detectQuasiIdentifiers(columns)
	report.Recommendations = a.recommend(report)
	return report
}

func (a *Analyzer) scanColumn(ds *table.Dataset, col string) []Finding {
	values, err := ds.Column(col)
	if err != nil {
		return nil
	}
	text := strings.Join(values, " ")

	kinds := make([]string, 0, len(a.patterns))
	for kind := range a.patterns {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	var findings []Finding
	for _, kind := range kinds {
		if matches := a.patterns[kind].FindAllString(text, -1); len(matches) > 0 {
			findings = append(findings, Finding{Column: col, Kind: kind, Matches: len(matches)})
		}
	}
	return findings
}

func (a *Analyzer) detectQuasiIdentifiers(columns []string) []string {
	seen := make(map[string]bool)
	var quasi []string
	for _, col := range columns {
		lower := strings.ToLower(col)
		for _, keywords := range a.quasiIdentifierKeywords {
			for _, keyword := range keywords {
				if strings.Contains(lower, keyword) && !seen[col] {
					seen[col] = true
					quasi = append(quasi, col)
				}
			}
		}
	}
	return quasi
}

func uniquenessRatio(ds *table.Dataset, col string) float64 {
	if ds.RowCount() == 0 {
		return 0
	}
	distinct, err := ds.DistinctValues(col)
	if err != nil {
		return 0
	}
	return float64(len(distinct)) / float64(ds.RowCount())
}

func (a *Analyzer) recommend(report *Report) []string {
	var recs []string
	if report.HasPII() {
		recs = append(recs,
			"Remove or encrypt detected PII before model training",
			"Consider data anonymization techniques")
	}
	if len(report.QuasiIdentifiers) > 0 {
		recs = append(recs,
			"Apply k-anonymity or l-diversity to quasi-identifiers",
			"Consider generalization or suppression of sensitive attributes")
	}
	var highlyUnique []string
	for col, ratio := range report.UniquenessRisk {
		if ratio > 0.9 {
			highlyUnique = append(highlyUnique, col)
		}
	}
	if len(highlyUnique) > 0 {
		sort.Strings(highlyUnique)
		recs = append(recs, fmt.Sprintf("Reduce granularity of highly unique columns: %s", strings.Join(highlyUnique, ", ")))
	}
	return recs
}
