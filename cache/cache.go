package cache

import (
	"context"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/jonwraymond/semcache/embedding"
	"github.com/jonwraymond/semcache/telemetry"
)

const instrumentationName = "github.com/jonwraymond/semcache/cache"

// Config configures a Cache.
type Config struct {
	// SimilarityThreshold is the minimum cosine similarity for a hit,
	// in (0, 1]. The default is deliberately high so only near-paraphrases
	// hit, not merely related topics.
	SimilarityThreshold float64

	// MaxSize is the maximum number of entries held by the default
	// memory index. Must be positive.
	MaxSize int
}

// DefaultConfig returns the default cache configuration.
// SimilarityThreshold: 0.95, MaxSize: 1000
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: 0.95,
		MaxSize:             1000,
	}
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		return ErrInvalidThreshold
	}
	if c.MaxSize <= 0 {
		return ErrInvalidMaxSize
	}
	return nil
}

// Stats is a read-only snapshot of cache state.
type Stats struct {
	// Entries is the current entry count.
	Entries int

	// MaxSize is the configured capacity.
	MaxSize int

	// SimilarityThreshold is the configured hit threshold.
	SimilarityThreshold float64

	// EmbedderAvailable reports whether the embedding function was
	// available at construction.
	EmbedderAvailable bool

	// Hits, Misses and Evictions count operations since construction.
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Cache is a bounded semantic response cache. Construct one explicitly
// with New and pass it to whichever component needs it; there is no
// process-wide instance.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Lookup/Store never return errors; embedding failure degrades Lookup
//   to a miss and Store to a no-op.
// - Lookup never mutates state and blocks only on the embedding call.
type Cache struct {
	config    Config
	embedder  embedding.Embedder
	index     Index
	available bool

	logger  telemetry.Logger
	tracer  trace.Tracer
	metrics *cacheMetrics

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// Option configures a Cache at construction.
type Option func(*options)

type options struct {
	config         Config
	index          Index
	logger         telemetry.Logger
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
}

// WithConfig replaces the entire configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) { o.config = cfg }
}

// WithSimilarityThreshold overrides the hit threshold.
func WithSimilarityThreshold(t float64) Option {
	return func(o *options) { o.config.SimilarityThreshold = t }
}

// WithMaxSize overrides the capacity of the default memory index.
func WithMaxSize(n int) Option {
	return func(o *options) { o.config.MaxSize = n }
}

// WithIndex replaces the default memory index. The supplied index owns
// its own capacity policy; Config.MaxSize applies only to the default.
func WithIndex(idx Index) Option {
	return func(o *options) { o.index = idx }
}

// WithLogger attaches a logger for degraded-path diagnostics.
func WithLogger(l telemetry.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMeterProvider attaches a meter provider for cache metrics.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// WithTracerProvider attaches a tracer provider for Lookup/Store spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// New creates a semantic cache around the given embedder.
//
// A nil embedder is not an error: the cache constructs in a permanently
// degraded state where every Lookup misses and every Store is a no-op,
// so an embedding model that failed to load never takes the primary
// request path down. Invalid configuration, by contrast, is a caller
// programming error and is rejected.
func New(embedder embedding.Embedder, opts ...Option) (*Cache, error) {
	o := &options{
		config:         DefaultConfig(),
		logger:         telemetry.NopLogger(),
		meterProvider:  metricnoop.NewMeterProvider(),
		tracerProvider: tracenoop.NewTracerProvider(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if err := o.config.Validate(); err != nil {
		return nil, err
	}

	c := &Cache{
		config:    o.config,
		embedder:  embedder,
		available: embedder != nil && embedder.Dimensions() > 0,
		logger:    o.logger,
		tracer:    o.tracerProvider.Tracer(instrumentationName),
	}

	if o.index != nil {
		c.index = o.index
	} else {
		idx, err := NewMemoryIndex(o.config.MaxSize, WithOnEvict(func(Entry) {
			c.evictions.Add(1)
			if c.metrics != nil {
				c.metrics.evictions.Add(context.Background(), 1)
			}
		}))
		if err != nil {
			return nil, err
		}
		c.index = idx
	}

	m, err := newCacheMetrics(o.meterProvider.Meter(instrumentationName))
	if err != nil {
		return nil, err
	}
	c.metrics = m

	if !c.available {
		c.logger.Warn(context.Background(), "embedder unavailable, cache degraded to no-op")
	}
	return c, nil
}

// Lookup returns the cached response for a query semantically equivalent
// to query under the same generation parameters. The second return value
// reports whether a hit occurred. Lookup never fails: any embedding or
// index error is a miss.
func (c *Cache) Lookup(ctx context.Context, query string, params Params) (string, bool) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "semcache.Lookup")
	defer span.End()

	if !c.available {
		return c.miss(ctx, start)
	}

	normalized := Normalize(query)
	vector, err := c.embedder.Embed(ctx, normalized)
	if err != nil {
		c.logger.Warn(ctx, "embedding failed during lookup, treating as miss",
			telemetry.F("error", err.Error()))
		return c.miss(ctx, start)
	}

	entry, score, found, err := c.index.Nearest(ctx, params.Fingerprint(), vector)
	if err != nil {
		c.logger.Warn(ctx, "index search failed, treating as miss",
			telemetry.F("error", err.Error()))
		return c.miss(ctx, start)
	}
	if !found || score < c.config.SimilarityThreshold {
		return c.miss(ctx, start)
	}

	c.hits.Add(1)
	c.metrics.recordLookup(ctx, true, start)
	return entry.Response, true
}

// Store caches response for (query, params). Store never fails: embedding
// or index errors make it a silent no-op, logged but not surfaced. After
// Store returns, the index holds at most its configured capacity.
func (c *Cache) Store(ctx context.Context, query string, params Params, response string) {
	ctx, span := c.tracer.Start(ctx, "semcache.Store")
	defer span.End()

	if !c.available {
		return
	}

	normalized := Normalize(query)
	vector, err := c.embedder.Embed(ctx, normalized)
	if err != nil {
		c.logger.Warn(ctx, "embedding failed during store, dropping entry",
			telemetry.F("error", err.Error()))
		return
	}

	entry := Entry{
		Key:             entryKey(normalized, params),
		Embedding:       vector,
		Response:        response,
		Params:          params,
		NormalizedQuery: normalized,
	}
	if err := c.index.Add(ctx, entry); err != nil {
		c.logger.Warn(ctx, "index insert failed, dropping entry",
			telemetry.F("error", err.Error()))
		return
	}
	c.metrics.stores.Add(ctx, 1)
}

// Clear removes all entries unconditionally. Clearing an empty cache is
// a no-op.
func (c *Cache) Clear(ctx context.Context) {
	if err := c.index.Clear(ctx); err != nil {
		c.logger.Warn(ctx, "index clear failed",
			telemetry.F("error", err.Error()))
	}
}

// Stats returns a read-only snapshot. Safe to call concurrently with any
// other operation.
func (c *Cache) Stats(ctx context.Context) Stats {
	entries, err := c.index.Len(ctx)
	if err != nil {
		c.logger.Warn(ctx, "index length failed",
			telemetry.F("error", err.Error()))
	}
	return Stats{
		Entries:             entries,
		MaxSize:             c.config.MaxSize,
		SimilarityThreshold: c.config.SimilarityThreshold,
		EmbedderAvailable:   c.available,
		Hits:                c.hits.Load(),
		Misses:              c.misses.Load(),
		Evictions:           c.evictions.Load(),
	}
}

func (c *Cache) miss(ctx context.Context, start time.Time) (string, bool) {
	c.misses.Add(1)
	c.metrics.recordLookup(ctx, false, start)
	return "", false
}
