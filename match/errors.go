package match

import "errors"

var (
	// ErrUnknownPolicy is returned when a policy name cannot be parsed.
	ErrUnknownPolicy = errors.New("unknown match policy")

	// ErrUnknownEmptyQuery is returned when an empty-query mode cannot be parsed.
	ErrUnknownEmptyQuery = errors.New("unknown empty query mode")
)
