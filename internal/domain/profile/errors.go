package profile

import "errors"

var (
	// ErrNameRequired is returned when the attendee name is blank.
	ErrNameRequired = errors.New("name is required")
	// ErrStepOrder is returned when a step is answered before the previous one.
	ErrStepOrder = errors.New("intake step answered out of order")
	// ErrIncomplete is returned by Build before every step is answered.
	ErrIncomplete = errors.New("profile intake incomplete")
	// ErrInvalidProfile wraps request validation failures.
	ErrInvalidProfile = errors.New("invalid profile")
)
