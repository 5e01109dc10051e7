package query

import (
	"context"

	"github.com/sitedock/assist/internal/domain"
)

// Searcher is the read-side vector store contract.
type Searcher interface {
	SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int, f domain.Filter) ([]domain.Scored, error)
}
