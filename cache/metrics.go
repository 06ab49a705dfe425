package cache

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// cacheMetrics holds the OpenTelemetry instruments for cache operations.
type cacheMetrics struct {
	hits      metric.Int64Counter
	misses    metric.Int64Counter
	stores    metric.Int64Counter
	evictions metric.Int64Counter
	lookupDur metric.Float64Histogram
}

func newCacheMetrics(meter metric.Meter) (*cacheMetrics, error) {
	hits, err := meter.Int64Counter(
		"semcache.lookup.hits",
		metric.WithDescription("Number of semantic cache hits"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	misses, err := meter.Int64Counter(
		"semcache.lookup.misses",
		metric.WithDescription("Number of semantic cache misses"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	stores, err := meter.Int64Counter(
		"semcache.store.total",
		metric.WithDescription("Number of entries stored"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	evictions, err := meter.Int64Counter(
		"semcache.evictions",
		metric.WithDescription("Number of entries evicted by capacity"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	lookupDur, err := meter.Float64Histogram(
		"semcache.lookup.duration_ms",
		metric.WithDescription("Lookup duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &cacheMetrics{
		hits:      hits,
		misses:    misses,
		stores:    stores,
		evictions: evictions,
		lookupDur: lookupDur,
	}, nil
}

func (m *cacheMetrics) recordLookup(ctx context.Context, hit bool, start time.Time) {
	opt := metric.WithAttributes(attribute.Bool("cache.hit", hit))
	if hit {
		m.hits.Add(ctx, 1, opt)
	} else {
		m.misses.Add(ctx, 1, opt)
	}
	m.lookupDur.Record(ctx, float64(time.Since(start).Microseconds())/1000.0, opt)
}
