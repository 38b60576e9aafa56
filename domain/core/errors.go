package core

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - centralized error definitions
var (
	// Schema errors
	ErrSchema             = errors.New("required column missing")
	ErrEmptyDataset       = errors.New("dataset has no records")
	ErrNoAttributes       = errors.New("no protected attributes supplied")
	ErrColumnTypeMismatch = errors.New("column value does not match declared type")

	// Analysis errors
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrNonBinaryLabel   = errors.New("label column is not binary")

	// Invariant errors
	ErrInvariantViolation = errors.New("computed value outside guaranteed range")
)

// SchemaError aggregates every missing column detected during validation so a
// caller sees the full list in one failure instead of one column per attempt.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%v: %s", ErrSchema, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error {
	return ErrSchema
}

// NewSchemaError creates a SchemaError for the given missing columns
func NewSchemaError(missing ...string) *SchemaError {
	return &SchemaError{Missing: missing}
}

// NewInsufficientDataError annotates ErrInsufficientData with attribute context
func NewInsufficientDataError(attribute string, groups int) error {
	return fmt.Errorf("%w: attribute %s has %d non-empty group(s), need at least 2", ErrInsufficientData, attribute, groups)
}

// NewInvariantViolation reports a quantity that escaped its guaranteed range
func NewInvariantViolation(quantity string, value float64) error {
	return fmt.Errorf("%w: %s = %g", ErrInvariantViolation, quantity, value)
}

// Error checking helpers
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrSchema)
}

func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

func IsInvariantViolation(err error) bool {
	return errors.Is(err, ErrInvariantViolation)
}

// MissingColumns extracts the aggregated column list from a SchemaError,
// or nil if err is not one.
func MissingColumns(err error) []string {
	var se *SchemaError
	if errors.As(err, &se) {
		return se.Missing
	}
	return nil
}
