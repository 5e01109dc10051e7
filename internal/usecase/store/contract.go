package store

import (
	"context"

	"github.com/sitedock/assist/internal/domain"
)

// Repository defines the persistence contract for the vector store.
type Repository interface {
	Upsert(ctx context.Context, c domain.Chunk) (created bool, err error)
	Get(ctx context.Context, id string) (domain.Chunk, error)
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	All(ctx context.Context) ([]domain.Chunk, error)
	Candidates(ctx context.Context, f domain.Filter, batchSize int) ([]domain.Chunk, error)
	Stats(ctx context.Context) (domain.StoreStats, error)
}
