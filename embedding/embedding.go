package embedding

import "context"

// Embedder maps text to a fixed-length vector.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Dimensions: every vector returned by Embed has length Dimensions(),
//   fixed for the life of the embedder.
// - Errors: Embed returns an error on any failure; callers decide whether
//   failure is fatal (the semantic cache treats it as a miss).
type Embedder interface {
	// Embed returns the vector representation of text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the length of vectors produced by Embed.
	Dimensions() int
}

// Func adapts a plain function into an Embedder. It is primarily useful
// for tests and for wrapping embedding calls that live elsewhere.
type Func struct {
	dims int
	fn   func(ctx context.Context, text string) ([]float32, error)
}

// NewFunc creates a function-backed embedder producing dims-length vectors.
func NewFunc(dims int, fn func(ctx context.Context, text string) ([]float32, error)) (*Func, error) {
	if dims <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Func{dims: dims, fn: fn}, nil
}

// Embed invokes the wrapped function.
func (f *Func) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.fn == nil {
		return nil, ErrUnavailable
	}
	return f.fn(ctx, text)
}

// Dimensions returns the configured vector length.
func (f *Func) Dimensions() int {
	return f.dims
}

// Ensure Func implements Embedder
var _ Embedder = (*Func)(nil)
