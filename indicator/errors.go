/*
errors.go - Centralized error types for the indicator engines

PURPOSE:
  All error types in one place for consistency and discoverability.
  Domain packages wrap these with additional context where needed.

ERROR CATEGORIES:
  1. Schema errors - required input columns absent (fatal, complete list)
  2. Workspace errors - dataset registry lookups
  3. Config errors - malformed engine configuration

  Arithmetic degeneracy is NOT an error category: SafeDivide absorbs it and
  the pipelines always produce a value. Data-quality findings that do not
  block processing travel as dataset.Issue values, not as Go errors.

USAGE:
  if indicator.IsSchemaError(err) {
      // surface the missing-column list to the user
  }

SEE ALSO:
  - arith.go: The absorbed-degeneracy policy
  - dataset package: Issue values for non-fatal findings
*/
package indicator

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMissingColumns is the root of every schema failure. Wrapped by
	// SchemaError, which carries the actual column list.
	ErrMissingColumns = errors.New("required columns missing")

	// ErrEmptyInput is returned when an engine is handed no records at all.
	ErrEmptyInput = errors.New("no records to process")

	// ErrDatasetNotFound is returned when a workspace dataset ID is unknown.
	ErrDatasetNotFound = errors.New("dataset not found")

	// ErrMonthNotFound is returned when a month-keyed update targets a month
	// absent from the dataset.
	ErrMonthNotFound = errors.New("month not found in dataset")

	// ErrInvalidConfig is returned by the factory for malformed engine
	// configuration documents.
	ErrInvalidConfig = errors.New("invalid engine configuration")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// SchemaError reports every required column absent from an input table.
// The list is always complete: callers fix the whole schema in one round,
// not one column at a time.
type SchemaError struct {
	Pipeline string // "reactive" | "proactive"
	Missing  []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("columnas requeridas faltantes: %s", strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error {
	return ErrMissingColumns
}

// NewSchemaError builds a SchemaError for the given pipeline. The missing
// slice is copied so later mutation by the caller cannot change the error.
func NewSchemaError(pipeline string, missing []string) *SchemaError {
	return &SchemaError{Pipeline: pipeline, Missing: append([]string(nil), missing...)}
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsSchemaError reports whether err is (or wraps) a schema failure.
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrMissingColumns)
}

// IsNotFound reports whether err indicates a missing dataset or month.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDatasetNotFound) || errors.Is(err, ErrMonthNotFound)
}

// IsClientError reports whether err is due to invalid caller input rather
// than an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingColumns) ||
		errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrEmptyInput) ||
		IsNotFound(err)
}
