package repository

import "errors"

// Sentinel kinds for community store errors.
var (
	ErrNotFound     = errors.New("shared itinerary not found")
	ErrInvalidLimit = errors.New("invalid community limit")
	ErrDuplicateID  = errors.New("shared itinerary id already exists")
	ErrStoreClosed  = errors.New("community store closed")
)
