package schedule

import "errors"

var (
	// ErrInvalidEvent indicates an add or edit request with out-of-range or
	// malformed fields. The schedule is never mutated when it is returned.
	ErrInvalidEvent = errors.New("invalid event")
	// ErrNotFound indicates a date/event id pair that does not resolve to an
	// existing occurrence.
	ErrNotFound = errors.New("event not found")
)
