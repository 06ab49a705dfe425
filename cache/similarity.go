package cache

import "math"

// Cosine returns the cosine similarity of two vectors: dot(a,b) divided by
// the product of their norms. If either vector has zero norm, or the
// lengths differ, the similarity is 0 so a degenerate vector can never
// produce a hit. Accumulation is done in float64 to limit rounding error.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
