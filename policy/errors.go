/*
errors.go - Centralized error types for the compliance engine

PURPOSE:
  All sentinel errors in one place. The taxonomy follows three tiers:

  1. Per-row data problems are NOT errors here at all: they become
     RejectedRow entries and processing continues.
  2. Structural input problems (missing column, empty file) abort a run
     before any output is written.
  3. Persistence problems are fatal for the run and wrapped by the
     store and pipeline with %w so callers can test with errors.Is.

USAGE:
  if errors.Is(err, policy.ErrMissingColumn) { ... }
*/
package policy

import "errors"

var (
	// ErrMissingColumn is returned when a required input column is absent
	// from the source file header. Structural: aborts the run.
	ErrMissingColumn = errors.New("required column missing")

	// ErrEmptyInput is returned when the source contains a header but no
	// data rows, or no rows at all survive normalization when a month
	// cannot be inferred.
	ErrEmptyInput = errors.New("no usable rows in input")

	// ErrMonthNotFound is returned when a requested month has no
	// compiled summary.
	ErrMonthNotFound = errors.New("month not found")

	// ErrInvalidPolicy is returned when an injected policy fails
	// validation.
	ErrInvalidPolicy = errors.New("invalid break policy")
)
