package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strconv"
)

// Params is the generation-parameter fingerprint: the parameters that
// materially change what a correct cached answer looks like. Two entries
// are only candidates for a hit when their Params match exactly.
type Params struct {
	// Temperature of the generation request.
	Temperature float64

	// MaxTokens is the maximum output length of the generation request.
	MaxTokens int
}

// Fingerprint returns a deterministic string identifying these parameters.
// Temperature is formatted with full round-trip precision, so two
// fingerprints are equal exactly when the parameters are bit-for-bit equal.
func (p Params) Fingerprint() string {
	return strconv.FormatFloat(p.Temperature, 'g', -1, 64) + "/" + strconv.Itoa(p.MaxTokens)
}

// entryKey derives the bookkeeping key for a (normalized query, params)
// pair: hex SHA-256 over the normalized text and the params fingerprint.
// The key identifies entries for insertion-order eviction; it is never
// used to decide hits, which always go through the similarity path.
func entryKey(normalizedQuery string, params Params) string {
	h := sha256.New()
	_, _ = io.WriteString(h, normalizedQuery)
	_, _ = h.Write([]byte{0})
	_, _ = io.WriteString(h, params.Fingerprint())
	return hex.EncodeToString(h.Sum(nil))
}
