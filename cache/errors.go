package cache

import "errors"

// Sentinel errors for cache construction and index operations.
var (
	// ErrInvalidThreshold indicates a similarity threshold outside (0, 1].
	ErrInvalidThreshold = errors.New("cache: similarity threshold must be in (0, 1]")

	// ErrInvalidMaxSize indicates a non-positive maximum size.
	ErrInvalidMaxSize = errors.New("cache: max size must be positive")
)
