package model

import "errors"

// Error kinds shared across the pipeline. Callers match with errors.Is.
var (
	// ErrInvalidArgument marks a bad parameter (non-positive recovery
	// limit, inverted date range).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMalformedSeries marks series data that violates the input
	// invariants (empty, unsorted dates, non-positive prices).
	ErrMalformedSeries = errors.New("malformed series")

	// ErrDataUnavailable marks an upstream fetch failure or an empty
	// result for the requested symbol and range.
	ErrDataUnavailable = errors.New("data unavailable")
)
