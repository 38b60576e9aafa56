package table

import "strconv"

// InferSchema derives a schema from observed values: columns whose non-blank
// values all parse as numbers are numeric, columns with exactly two distinct
// values are binary, everything else is categorical. Readers use this when no
// schema is declared up front.
func InferSchema(headers []string, records []Record) Schema {
	schema := make(Schema, len(headers))
	for _, col := range headers {
		schema[col] = inferColumnType(col, records)
	}
	return schema
}

func inferColumnType(col string, records []Record) ColumnType {
	distinct := make(map[string]bool, 8)
	numeric := true
	seen := 0
	for _, rec := range records {
		v, ok := rec[col]
		if !ok || v == "" {
			continue
		}
		seen++
		distinct[v] = true
		if numeric {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				numeric = false
			}
		}
	}
	if seen == 0 {
		return TypeCategorical
	}
	// Two distinct values read as an outcome-style column even when the
	// values happen to be numeric (0/1).
	if len(distinct) == 2 {
		return TypeBinary
	}
	if numeric {
		return TypeNumeric
	}
	return TypeCategorical
}

// New builds a dataset from headers and records with an inferred schema
func New(headers []string, records []Record) *Dataset {
	return &Dataset{
		Records: records,
		Schema:  InferSchema(headers, records),
	}
}
