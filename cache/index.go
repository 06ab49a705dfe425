package cache

import "context"

// Index stores entries and answers nearest-neighbor queries for the cache.
// The default MemoryIndex scans linearly; remote or approximate indexes
// (see the qdrant subpackage) can be swapped in behind the same contract.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Filtering: Nearest only considers entries whose Params fingerprint
//   equals the requested one; similarity never crosses parameter sets.
// - Ties: on equal similarity the entry inserted earliest wins.
// - Thresholding: Nearest returns the best candidate and its score; the
//   Cache applies the similarity threshold, so all implementations share
//   identical hit semantics.
type Index interface {
	// Add inserts an entry. Re-adding an existing key refreshes its
	// insertion recency for eviction purposes.
	Add(ctx context.Context, e Entry) error

	// Nearest returns the stored entry with the highest cosine similarity
	// to vector among entries matching fingerprint, along with the score.
	// found is false when no entry matches the fingerprint.
	Nearest(ctx context.Context, fingerprint string, vector []float32) (e Entry, score float64, found bool, err error)

	// Clear removes all entries unconditionally.
	Clear(ctx context.Context) error

	// Len returns the current entry count.
	Len(ctx context.Context) (int, error)
}
