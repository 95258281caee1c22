package catalog

import "errors"

// Sentinel errors for catalog loading and lookups.
var (
	ErrLoadCatalog    = errors.New("load catalog")
	ErrInvalidSession = errors.New("invalid session")
	ErrDayNotFound    = errors.New("day not found")
)
