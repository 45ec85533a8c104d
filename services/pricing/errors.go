package pricing

import "errors"

var (
	// ErrInvalidDateRange means checkout is not after check-in or a date failed to parse.
	ErrInvalidDateRange = errors.New("invalid check-in or check-out dates")
	// ErrInvalidNights means the stay is shorter than one night.
	ErrInvalidNights = errors.New("booking must be at least 1 night")
)
