package errors

import "errors"

var (
	// Storage errors
	ErrStorageIO  = errors.New("storage io error")
	ErrCorruption = errors.New("run corruption")

	// Config errors
	ErrInvalidConfig = errors.New("invalid config")

	// Request errors
	ErrInvalidKey = errors.New("invalid key")
)
