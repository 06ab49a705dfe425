// Package embedding defines the text-embedding contract consumed by the
// semantic cache, plus provider implementations and a failure breaker.
//
// An Embedder maps text to a fixed-length vector such that semantically
// similar text maps to nearby vectors under cosine similarity. The cache
// treats embedders as black boxes: any error degrades the cache to a miss,
// never to a caller-visible failure.
package embedding
