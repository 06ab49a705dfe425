package cache

// Entry is one cached (embedding, response) pair. Entries are created by
// Store and never mutated afterwards; they are destroyed only by Clear or
// by capacity-driven eviction.
type Entry struct {
	// Key identifies the entry for bookkeeping and eviction order.
	Key string

	// Embedding is the vector of the normalized query, produced once at
	// insertion time.
	Embedding []float32

	// Response is the cached textual result, stored verbatim.
	Response string

	// Params are the generation parameters in effect when Response was
	// produced.
	Params Params

	// NormalizedQuery is the text that was actually embedded, kept for
	// diagnostics.
	NormalizedQuery string
}
