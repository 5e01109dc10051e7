package domain

import "errors"

var (
	// ErrChunkNotFound signals a missing chunk.
	ErrChunkNotFound = errors.New("chunk not found")
	// ErrDimensionMismatch signals incompatible embedding dimensions.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	// ErrInvalidMetadata signals an unparsable stored metadata record.
	ErrInvalidMetadata = errors.New("invalid chunk metadata")
	// ErrInvalidQuery signals a malformed query or search request.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrEmbeddingProvider signals an embedding backend failure.
	ErrEmbeddingProvider = errors.New("embedding provider error")
	// ErrGenerationProvider signals a language-model backend failure.
	ErrGenerationProvider = errors.New("generation provider error")
)
