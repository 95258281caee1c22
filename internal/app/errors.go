package service

import "errors"

// Sentinel errors returned by the Service.
var (
	ErrNotStarted    = errors.New("service not started")
	ErrBatchTooLarge = errors.New("too many profiles in batch")
	ErrInvalidShare  = errors.New("invalid share")
)
