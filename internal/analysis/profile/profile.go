package profile

import (
	"github.com/montanaflynn/stats"

	"fairlens/domain/table"
)

// ColumnProfile summarizes one column of a dataset
type ColumnProfile struct {
	Name        string           `json:"name"`
	Type        table.ColumnType `json:"type"`
	NonBlank    int              `json:"non_blank"`
	UniqueCount int              `json:"unique_count"`
	UniqueRatio float64          `json:"unique_ratio"`
	Numeric     *NumericSummary  `json:"numeric,omitempty"`
}

// NumericSummary holds summary statistics for numeric columns
type NumericSummary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// DatasetProfile is the per-column profile of a whole dataset
type DatasetProfile struct {
	Rows    int             `json:"rows"`
	Columns []ColumnProfile `json:"columns"`
}

// Computer profiles datasets column by column
type Computer struct{}

// NewComputer creates a profile computer
func NewComputer() *Computer {
	return &Computer{}
}

// Profile computes per-column statistics. Column order follows the order the
// caller supplies, so profiles render deterministically.
func (c *Computer) Profile(ds *table.Dataset, columns []string) (*DatasetProfile, error) {
	result := &DatasetProfile{Rows: ds.RowCount()}
	for _, name := range columns {
		cp, err := c.profileColumn(ds, name)
		if err != nil {
			return nil, err
		}
		result.Columns = append(result.Columns, cp)
	}
	return result, nil
}

func (c *Computer) profileColumn(ds *table.Dataset, name string) (ColumnProfile, error) {
	values, err := ds.Column(name)
	if err != nil {
		return ColumnProfile{}, err
	}

	distinct := make(map[string]bool, 16)
	nonBlank := 0
	for _, v := range values {
		if v == "" {
			continue
		}
		nonBlank++
		distinct[v] = true
	}

	cp := ColumnProfile{
		Name:        name,
		Type:        ds.Schema[name],
		NonBlank:    nonBlank,
		UniqueCount: len(distinct),
	}
	if ds.RowCount() > 0 {
		cp.UniqueRatio = float64(len(distinct)) / float64(ds.RowCount())
	}

	if cp.Type == table.TypeNumeric {
		data, err := ds.NumericColumn(name)
		if err == nil && len(data) > 0 {
			cp.Numeric = summarizeNumeric(data)
		}
	}
	return cp, nil
}

func summarizeNumeric(data []float64) *NumericSummary {
	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviation(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	median, _ := stats.Median(data)
	q25, _ := stats.Percentile(data, 25)
	q75, _ := stats.Percentile(data, 75)

	return &NumericSummary{
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		Median: median,
		Q25:    q25,
		Q75:    q75,
	}
}
