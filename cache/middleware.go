package cache

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// ComputeFunc produces a response for a query on a cache miss, typically
// by calling the upstream generative model.
type ComputeFunc func(ctx context.Context, query string, params Params) (string, error)

// Middleware wraps response generation with the semantic cache and
// coalesces concurrent identical misses into a single upstream call.
//
// Coalescing is keyed by the exact (normalized query, params) pair, so
// only verbatim duplicates share one computation; near-paraphrases racing
// each other still compute independently, exactly as direct Cache use
// would. The core Cache contract is unchanged: this is an opt-in layer.
type Middleware struct {
	cache *Cache
	group singleflight.Group
}

// NewMiddleware creates a caching middleware around c.
func NewMiddleware(c *Cache) *Middleware {
	return &Middleware{cache: c}
}

// Execute returns a cached response when the cache hits, otherwise runs
// compute and stores its result. Errors from compute are returned as-is
// and never cached.
func (m *Middleware) Execute(ctx context.Context, query string, params Params, compute ComputeFunc) (string, error) {
	if response, ok := m.cache.Lookup(ctx, query, params); ok {
		return response, nil
	}

	key := entryKey(Normalize(query), params)
	v, err, _ := m.group.Do(key, func() (any, error) {
		response, err := compute(ctx, query, params)
		if err != nil {
			return "", err
		}
		m.cache.Store(ctx, query, params, response)
		return response, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
