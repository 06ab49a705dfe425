// Package cache provides a bounded semantic response cache for generative
// calls.
//
// A lookup hits when a previously stored query is semantically close enough
// to the incoming one (cosine similarity of their embeddings at or above a
// configured threshold) and was generated under exactly the same parameters.
// Embedding failures never surface to callers: the cache degrades to a miss
// on Lookup and a no-op on Store.
package cache
