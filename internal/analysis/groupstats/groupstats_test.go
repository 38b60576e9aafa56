package groupstats

import (
	"testing"

	"fairlens/domain/core"
	"fairlens/domain/table"
)

func loanRecords() []table.Record {
	return []table.Record{
		{"gender": "Female", "approved": "1"},
		{"gender": "Male", "approved": "1"},
		{"gender": "Female", "approved": "0"},
		{"gender": "Male", "approved": "0"},
		{"gender": "Female", "approved": "0"},
		{"gender": "Male", "approved": "1"},
	}
}

func TestSummarize_FirstSeenOrder(t *testing.T) {
	ds := table.New([]string{"gender", "approved"}, loanRecords())
	label := table.LabelSpec{Column: "approved", Positive: "1"}

	groups, err := Summarize(ds, "gender", label)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Category != "Female" || groups[1].Category != "Male" {
		t.Errorf("groups not in first-seen order: %s, %s", groups[0].Category, groups[1].Category)
	}
}

func TestSummarize_CountsAndRates(t *testing.T) {
	ds := table.New([]string{"gender", "approved"}, loanRecords())
	label := table.LabelSpec{Column: "approved", Positive: "1"}

	groups, err := Summarize(ds, "gender", label)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	female, male := groups[0], groups[1]
	if female.Total != 3 || female.Positives != 1 {
		t.Errorf("Female counts = %d/%d, want 3/1", female.Total, female.Positives)
	}
	if male.Total != 3 || male.Positives != 2 {
		t.Errorf("Male counts = %d/%d, want 3/2", male.Total, male.Positives)
	}

	// no record double-counted or dropped
	if female.Total+male.Total != ds.RowCount() {
		t.Errorf("group totals sum to %d, want %d", female.Total+male.Total, ds.RowCount())
	}

	if got := female.Rate; got < 0.333 || got > 0.334 {
		t.Errorf("Female rate = %v, want 1/3", got)
	}
}

func TestSummarize_MissingColumnsAggregated(t *testing.T) {
	ds := table.New([]string{"gender", "approved"}, loanRecords())

	_, err := Summarize(ds, "race", table.LabelSpec{Column: "decision", Positive: "1"})
	if err == nil {
		t.Fatal("expected schema error")
	}
	if !core.IsSchemaError(err) {
		t.Fatalf("error = %v, want schema error", err)
	}
	missing := core.MissingColumns(err)
	if len(missing) != 2 {
		t.Errorf("missing columns = %v, want both race and decision", missing)
	}
}

func TestSelectionRates_SeparateBasisColumn(t *testing.T) {
	records := []table.Record{
		{"gender": "Female", "approved": "0", "predicted": "1"},
		{"gender": "Female", "approved": "0", "predicted": "1"},
		{"gender": "Male", "approved": "1", "predicted": "0"},
		{"gender": "Male", "approved": "1", "predicted": "1"},
	}
	ds := table.New([]string{"gender", "approved", "predicted"}, records)

	rates, err := SelectionRates(ds, "gender", "predicted", "1")
	if err != nil {
		t.Fatalf("SelectionRates failed: %v", err)
	}

	if rates[0].Category != "Female" || rates[0].Rate != 1.0 {
		t.Errorf("Female selection rate = %+v, want 1.0", rates[0])
	}
	if rates[1].Category != "Male" || rates[1].Rate != 0.5 {
		t.Errorf("Male selection rate = %+v, want 0.5", rates[1])
	}
}
