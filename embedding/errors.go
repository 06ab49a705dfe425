package embedding

import "errors"

var (
	// ErrUnavailable indicates the embedder cannot serve requests,
	// either because it failed to initialize or because its breaker
	// is open after repeated failures.
	ErrUnavailable = errors.New("embedding: embedder unavailable")

	// ErrEmptyResponse indicates the provider returned no vectors.
	ErrEmptyResponse = errors.New("embedding: empty embedding response")

	// ErrInvalidDimensions indicates a provider was configured with a
	// non-positive vector dimensionality.
	ErrInvalidDimensions = errors.New("embedding: dimensions must be positive")
)
