package scoring

import "errors"

// ErrUnknownAccumulator is returned when a configured rule names an unknown accumulator.
var ErrUnknownAccumulator = errors.New("unknown accumulator")
