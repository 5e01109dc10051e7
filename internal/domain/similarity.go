package domain

import (
	"fmt"
	"math"
)

// MinSimilarity is the fixed relevance floor. Candidates scoring below it are
// treated as noise, not evidence.
const MinSimilarity = 0.3

// maxCandidateBatch bounds how many stored chunks a single search examines.
const maxCandidateBatch = 100

// CandidateBatchSize returns min(limit*10, 100): over-fetch enough candidates
// to survive thresholding without scanning the whole store.
func CandidateBatchSize(limit int) int {
	n := limit * 10
	if n > maxCandidateBatch {
		return maxCandidateBatch
	}
	return n
}

// Cosine computes cosine similarity between two vectors. A length mismatch is
// an error for this comparison only; a zero-norm vector yields similarity 0.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Scored pairs a chunk with its similarity to a query embedding.
type Scored struct {
	Chunk      Chunk
	Similarity float64
}
