// Package qdrant provides a cache.Index backed by a Qdrant collection,
// for deployments whose entry count outgrows the in-memory linear scan.
//
// Hit semantics are identical to the memory index: the similarity
// threshold is applied by the core cache, and parameter fingerprints are
// matched exactly via a payload filter. Capacity is the collection's
// concern; there is no FIFO eviction on the remote side.
package qdrant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/jonwraymond/semcache/cache"
)

// Payload field names for stored entries.
const (
	fieldKey         = "key"
	fieldResponse    = "response"
	fieldQuery       = "query"
	fieldFingerprint = "fingerprint"
	fieldTemperature = "temperature"
	fieldMaxTokens   = "max_tokens"
)

// Config configures the Qdrant index.
type Config struct {
	// Host and Port locate the Qdrant gRPC endpoint.
	Host string
	Port int

	// Collection is the collection name. Created on construction if it
	// does not exist, with cosine distance at Dimensions.
	Collection string

	// Dimensions is the embedding dimensionality, fixed by the embedder.
	Dimensions int
}

// Index implements cache.Index on a Qdrant collection.
type Index struct {
	client     *qdrant.Client
	collection string
	dims       int
}

// New connects to Qdrant and ensures the collection exists.
func New(ctx context.Context, cfg Config) (*Index, error) {
	if cfg.Dimensions <= 0 {
		return nil, fmt.Errorf("qdrant: dimensions must be positive, got %d", cfg.Dimensions)
	}
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: cfg.Host,
		Port: cfg.Port,
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: failed to create client: %w", err)
	}

	idx := &Index{
		client:     client,
		collection: cfg.Collection,
		dims:       cfg.Dimensions,
	}
	if err := idx.ensureCollection(ctx); err != nil {
		return nil, err
	}
	return idx, nil
}

// Add implements cache.Index.
func (idx *Index) Add(ctx context.Context, e cache.Entry) error {
	_, err := idx.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: idx.collection,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(uuid.New().String()),
				Vectors: qdrant.NewVectorsDense(e.Embedding),
				Payload: entryPayload(e),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("qdrant: failed to upsert point: %w", err)
	}
	return nil
}

// Nearest implements cache.Index. Qdrant ranks by cosine similarity, so
// the single best point under the fingerprint filter is returned and the
// core cache applies the threshold.
func (idx *Index) Nearest(ctx context.Context, fingerprint string, vector []float32) (cache.Entry, float64, bool, error) {
	points, err := idx.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: idx.collection,
		Query:          qdrant.NewQueryDense(vector),
		Limit:          qdrant.PtrOf(uint64(1)),
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch(fieldFingerprint, fingerprint),
			},
		},
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil {
		return cache.Entry{}, 0, false, fmt.Errorf("qdrant: query failed: %w", err)
	}
	if len(points) == 0 {
		return cache.Entry{}, 0, false, nil
	}

	best := points[0]
	return entryFromPayload(best.Payload), float64(best.Score), true, nil
}

// Clear implements cache.Index by dropping and recreating the collection.
func (idx *Index) Clear(ctx context.Context) error {
	if err := idx.client.DeleteCollection(ctx, idx.collection); err != nil {
		return fmt.Errorf("qdrant: failed to delete collection: %w", err)
	}
	return idx.ensureCollection(ctx)
}

// Len implements cache.Index.
func (idx *Index) Len(ctx context.Context) (int, error) {
	count, err := idx.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: idx.collection,
	})
	if err != nil {
		return 0, fmt.Errorf("qdrant: count failed: %w", err)
	}
	return int(count), nil
}

// Close releases the underlying gRPC connection.
func (idx *Index) Close() error {
	return idx.client.Close()
}

func (idx *Index) ensureCollection(ctx context.Context) error {
	exists, err := idx.client.CollectionExists(ctx, idx.collection)
	if err != nil {
		return fmt.Errorf("qdrant: failed to check collection %s: %w", idx.collection, err)
	}
	if exists {
		return nil
	}
	err = idx.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: idx.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(idx.dims),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("qdrant: failed to create collection %s: %w", idx.collection, err)
	}
	return nil
}

func entryPayload(e cache.Entry) map[string]*qdrant.Value {
	return qdrant.NewValueMap(map[string]any{
		fieldKey:         e.Key,
		fieldResponse:    e.Response,
		fieldQuery:       e.NormalizedQuery,
		fieldFingerprint: e.Params.Fingerprint(),
		fieldTemperature: e.Params.Temperature,
		fieldMaxTokens:   int64(e.Params.MaxTokens),
	})
}

func entryFromPayload(payload map[string]*qdrant.Value) cache.Entry {
	return cache.Entry{
		Key:             payload[fieldKey].GetStringValue(),
		Response:        payload[fieldResponse].GetStringValue(),
		NormalizedQuery: payload[fieldQuery].GetStringValue(),
		Params: cache.Params{
			Temperature: payload[fieldTemperature].GetDoubleValue(),
			MaxTokens:   int(payload[fieldMaxTokens].GetIntegerValue()),
		},
	}
}

// Ensure Index implements cache.Index
var _ cache.Index = (*Index)(nil)
