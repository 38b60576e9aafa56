package groupstats

import (
	"fairlens/domain/core"
	"fairlens/domain/fairness"
	"fairlens/domain/table"
)

// Summarize partitions a dataset by the attribute's categorical values and
// computes per-group counts and positive-outcome rates. Groups appear in
// first-seen order of category value, which keeps report ordering stable for
// a given input order. Groups come from observed data only, so a category with
// zero records never appears.
func Summarize(ds *table.Dataset, attribute string, label table.LabelSpec) ([]fairness.GroupSummary, error) {
	var missing []string
	if !ds.HasColumn(attribute) {
		missing = append(missing, attribute)
	}
	if !ds.HasColumn(label.Column) {
		missing = append(missing, label.Column)
	}
	if len(missing) > 0 {
		return nil, core.NewSchemaError(missing...)
	}

	index := make(map[string]int, 8)
	var groups []fairness.GroupSummary

	for _, rec := range ds.Records {
		category := rec[attribute]
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, fairness.GroupSummary{Category: category})
		}
		groups[i].Total++
		if rec[label.Column] == label.Positive {
			groups[i].Positives++
		}
	}

	for i := range groups {
		if groups[i].Total > 0 {
			groups[i].Rate = float64(groups[i].Positives) / float64(groups[i].Total)
		}
	}

	return groups, nil
}

// SelectionRates computes the proportion of each group meeting the selection
// predicate on the given basis column (typically a predicted outcome). This is
// deliberately a separate computation from Summarize's approval rate: the two
// quantities use different predicate bases and are reported side by side.
func SelectionRates(ds *table.Dataset, attribute, basisColumn, positive string) ([]fairness.SelectionRate, error) {
	var missing []string
	if !ds.HasColumn(attribute) {
		missing = append(missing, attribute)
	}
	if !ds.HasColumn(basisColumn) {
		missing = append(missing, basisColumn)
	}
	if len(missing) > 0 {
		return nil, core.NewSchemaError(missing...)
	}

	type counts struct {
		total    int
		selected int
	}
	var order []string
	tally := make(map[string]*counts, 8)

	for _, rec := range ds.Records {
		category := rec[attribute]
		c, ok := tally[category]
		if !ok {
			c = &counts{}
			tally[category] = c
			order = append(order, category)
		}
		c.total++
		if rec[basisColumn] == positive {
			c.selected++
		}
	}

	rates := make([]fairness.SelectionRate, len(order))
	for i, category := range order {
		c := tally[category]
		rate := 0.0
		if c.total > 0 {
			rate = float64(c.selected) / float64(c.total)
		}
		rates[i] = fairness.SelectionRate{Category: category, Rate: rate}
	}
	return rates, nil
}
