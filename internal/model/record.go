package model

import (
	"fmt"
	"math"
)

// Feature column names, in the order every model was trained against.
const (
	ColumnCreditScore      = "CreditScore"
	ColumnOCLTV            = "OCLTV"
	ColumnDTI              = "DTI"
	ColumnOrigUPB          = "OrigUPB"
	ColumnOrigInterestRate = "OrigInterestRate"
)

// Columns returns the feature columns in training order.
func Columns() []string {
	return []string{
		ColumnCreditScore,
		ColumnOCLTV,
		ColumnDTI,
		ColumnOrigUPB,
		ColumnOrigInterestRate,
	}
}

// Record is a single labeled row handed to a classifier.
type Record struct {
	Columns []string
	Values  []float64
}

// NewRecord binds values positionally to columns.
func NewRecord(columns []string, values []float64) (Record, error) {
	if len(values) != len(columns) {
		return Record{}, fmt.Errorf("%d columns passed, passed data had %d values", len(columns), len(values))
	}

	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Record{}, fmt.Errorf("column %s: value %v is not a finite number", columns[i], v)
		}
	}

	return Record{
		Columns: append([]string(nil), columns...),
		Values:  append([]float64(nil), values...),
	}, nil
}

// Width returns the number of values in the row.
func (r Record) Width() int {
	return len(r.Values)
}

// Value returns the value bound to column.
func (r Record) Value(column string) (float64, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i], true
		}
	}
	return 0, false
}

// Align reorders the row to match names, the column order a model was
// fitted with. An empty names slice returns the values unchanged.
func (r Record) Align(names []string) ([]float64, error) {
	if len(names) == 0 {
		return r.Values, nil
	}

	if len(names) != r.Width() {
		return nil, fmt.Errorf("X has %d features, but model is expecting %d features as input", r.Width(), len(names))
	}

	for i, name := range names {
		if r.Columns[i] != name {
			return nil, fmt.Errorf("feature names must be in the same order as they were in fit: expected %q at position %d, got %q", name, i, r.Columns[i])
		}
	}

	return r.Values, nil
}
