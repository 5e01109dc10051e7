package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sitedock/assist/internal/domain"
)

// Service implements the vector store: idempotent upserts keyed by
// deterministic chunk ids and brute-force cosine similarity search with
// metadata pre-filtering.
type Service struct {
	repo   Repository
	logger *zap.Logger

	mu  sync.Mutex
	dim int // embedding dimension, fixed once the first embedded chunk arrives
}

// New creates a vector store service.
func New(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// AddDocument upserts a chunk by id: content, metadata, embedding, and
// UpdatedAt are fully overwritten (last-writer-wins, no merge). A chunk whose
// embedding dimension differs from the store's established dimension is
// rejected.
func (s *Service) AddDocument(ctx context.Context, c domain.Chunk) error {
	if c.ID == "" {
		return fmt.Errorf("%w: empty chunk id", domain.ErrInvalidQuery)
	}
	if c.HasEmbedding() {
		if err := s.checkDimension(len(c.Embedding)); err != nil {
			return fmt.Errorf("chunk %s: %w", c.ID, err)
		}
	}

	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	created, err := s.repo.Upsert(ctx, c)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", c.ID, err)
	}
	s.logger.Debug("chunk upserted",
		zap.String("id", c.ID),
		zap.Bool("created", created),
		zap.Bool("embedded", c.HasEmbedding()),
	)
	return nil
}

// SearchSimilar returns up to limit chunks ordered by descending cosine
// similarity to the query embedding. It examines a candidate batch of at
// most min(limit*10, 100) stored chunks, skips candidates with mismatched
// dimensions, and discards similarities below the relevance floor. An empty
// result is a valid outcome, not an error.
func (s *Service) SearchSimilar(
	ctx context.Context, queryEmbedding []float32, limit int, f domain.Filter,
) ([]domain.Scored, error) {
	if len(queryEmbedding) == 0 {
		return nil, fmt.Errorf("%w: empty query embedding", domain.ErrInvalidQuery)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", domain.ErrInvalidQuery, limit)
	}

	candidates, err := s.repo.Candidates(ctx, f, domain.CandidateBatchSize(limit))
	if err != nil {
		return nil, fmt.Errorf("select candidates: %w", err)
	}

	scored := make([]domain.Scored, 0, len(candidates))
	for _, c := range candidates {
		sim, err := domain.Cosine(queryEmbedding, c.Embedding)
		if err != nil {
			if errors.Is(err, domain.ErrDimensionMismatch) {
				s.logger.Warn("skipping candidate with mismatched dimension",
					zap.String("id", c.ID),
					zap.Int("query_dim", len(queryEmbedding)),
					zap.Int("candidate_dim", len(c.Embedding)),
				)
				continue
			}
			return nil, fmt.Errorf("compare %s: %w", c.ID, err)
		}
		if sim < domain.MinSimilarity {
			continue
		}
		scored = append(scored, domain.Scored{Chunk: c, Similarity: sim})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// RemoveDocument deletes a chunk by id. Unknown ids are not an error.
func (s *Service) RemoveDocument(ctx context.Context, id string) error {
	if err := s.repo.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove %s: %w", id, err)
	}
	return nil
}

// ClearStore deletes all chunks and resets the dimension lock.
func (s *Service) ClearStore(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	s.mu.Lock()
	s.dim = 0
	s.mu.Unlock()
	return nil
}

// GetAllDocuments returns a full dump for diagnostics. Not used on the hot
// query path.
func (s *Service) GetAllDocuments(ctx context.Context) ([]domain.Chunk, error) {
	chunks, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}
	return chunks, nil
}

// GetStats returns aggregate chunk counts.
func (s *Service) GetStats(ctx context.Context) (domain.StoreStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return domain.StoreStats{}, fmt.Errorf("stats: %w", err)
	}
	return stats, nil
}

// checkDimension records the first observed embedding dimension and rejects
// later writes that disagree with it.
func (s *Service) checkDimension(dim int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dim == 0 {
		s.dim = dim
		return nil
	}
	if s.dim != dim {
		return fmt.Errorf("%w: store is %d-dimensional, got %d", domain.ErrDimensionMismatch, s.dim, dim)
	}
	return nil
}
