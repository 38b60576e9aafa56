package table

import (
	"strconv"

	"fairlens/domain/core"
)

// ColumnType classifies how a column's values are interpreted
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
	TypeBinary      ColumnType = "binary"
)

// Schema maps column names to their declared types. It is validated once at
// engine entry so downstream components can assume typed columns.
type Schema map[string]ColumnType

// Record is one row of a dataset. Cell values are kept as their raw string
// form; the schema declares how each column is interpreted.
type Record map[string]string

// LabelSpec identifies the outcome column and which of its two values denotes
// the favorable outcome (e.g. approved=1).
type LabelSpec struct {
	Column   string `json:"column"`
	Positive string `json:"positive"`
}

// Dataset is an ordered, read-only collection of records with an explicit
// schema. No component mutates a dataset after construction.
type Dataset struct {
	Records []Record `json:"records"`
	Schema  Schema   `json:"schema"`
}

// RowCount returns the number of records
func (d *Dataset) RowCount() int {
	return len(d.Records)
}

// HasColumn checks whether the schema declares a column
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.Schema[name]
	return ok
}

// Columns returns the declared column names in unspecified order
func (d *Dataset) Columns() []string {
	cols := make([]string, 0, len(d.Schema))
	for name := range d.Schema {
		cols = append(cols, name)
	}
	return cols
}

// Column returns all values of a column in record order
func (d *Dataset) Column(name string) ([]string, error) {
	if !d.HasColumn(name) {
		return nil, core.NewSchemaError(name)
	}
	values := make([]string, len(d.Records))
	for i, rec := range d.Records {
		values[i] = rec[name]
	}
	return values, nil
}

// NumericColumn parses a column's values as float64, skipping blanks.
// Non-blank values that fail to parse are an error: the schema promised
// a numeric column.
func (d *Dataset) NumericColumn(name string) ([]float64, error) {
	raw, err := d.Column(name)
	if err != nil {
		return nil, err
	}
	values := make([]float64, 0, len(raw))
	for _, v := range raw {
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, core.ErrColumnTypeMismatch
		}
		values = append(values, f)
	}
	return values, nil
}

// DistinctValues returns the distinct values of a column in first-seen order
func (d *Dataset) DistinctValues(name string) ([]string, error) {
	raw, err := d.Column(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, 8)
	var distinct []string
	for _, v := range raw {
		if !seen[v] {
			seen[v] = true
			distinct = append(distinct, v)
		}
	}
	return distinct, nil
}

// ValidateLabel checks that the label column holds at most two distinct
// values. A single observed value is allowed (e.g. a dataset where nothing
// was approved); with two values, one must be the declared positive value.
func (d *Dataset) ValidateLabel(label LabelSpec) error {
	distinct, err := d.DistinctValues(label.Column)
	if err != nil {
		return err
	}
	switch len(distinct) {
	case 1:
		return nil
	case 2:
		for _, v := range distinct {
			if v == label.Positive {
				return nil
			}
		}
	}
	return core.ErrNonBinaryLabel
}
