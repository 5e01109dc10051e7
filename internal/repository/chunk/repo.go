package chunk

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sitedock/assist/internal/domain"
)

// store is the consumer interface for chunk persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo persists chunks as one hash per chunk, keyed <prefix>chunk:<id>.
// The chunk id starts with the entity type, so type-filtered candidate
// selection is a key-pattern scan rather than serialized-text matching.
type Repo struct {
	store  store
	prefix string
	logger *zap.Logger
}

// New creates a chunk repository. prefix namespaces all keys (e.g. "assist:").
func New(s store, prefix string, logger *zap.Logger) *Repo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repo{store: s, prefix: prefix, logger: logger}
}

// Upsert writes a chunk, fully overwriting any previous version. The original
// CreatedAt is preserved on update. Returns true if the chunk was created.
func (r *Repo) Upsert(ctx context.Context, c domain.Chunk) (bool, error) {
	key := r.key(c.ID)

	existing, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read existing %s: %w", c.ID, err)
	}
	created := len(existing) == 0
	if !created {
		if t, perr := time.Parse(time.RFC3339Nano, existing[fieldCreatedAt]); perr == nil {
			c.CreatedAt = t
		}
	}

	fields, err := encodeFields(c)
	if err != nil {
		return false, fmt.Errorf("encode chunk %s: %w", c.ID, err)
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return false, fmt.Errorf("hset %s: %w", c.ID, err)
	}
	return created, nil
}

// Get returns a chunk by id.
func (r *Repo) Get(ctx context.Context, id string) (domain.Chunk, error) {
	fields, err := r.store.HGetAll(ctx, r.key(id))
	if err != nil {
		return domain.Chunk{}, fmt.Errorf("hgetall %s: %w", id, err)
	}
	if len(fields) == 0 {
		return domain.Chunk{}, domain.ErrChunkNotFound
	}
	return decodeFields(id, fields)
}

// Remove deletes a chunk by id. Deleting a non-existent id is not an error.
func (r *Repo) Remove(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, r.key(id)); err != nil {
		return fmt.Errorf("del %s: %w", id, err)
	}
	return nil
}

// Clear deletes all chunks.
func (r *Repo) Clear(ctx context.Context) error {
	keys, err := r.store.Scan(ctx, r.pattern(""))
	if err != nil {
		return fmt.Errorf("scan chunks: %w", err)
	}
	for _, key := range keys {
		if err := r.store.Del(ctx, key); err != nil {
			return fmt.Errorf("del %s: %w", key, err)
		}
	}
	return nil
}

// All returns every stored chunk. Diagnostics only; records with broken
// metadata are skipped with a warning.
func (r *Repo) All(ctx context.Context) ([]domain.Chunk, error) {
	keys, err := r.store.Scan(ctx, r.pattern(""))
	if err != nil {
		return nil, fmt.Errorf("scan chunks: %w", err)
	}
	sort.Strings(keys)

	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch chunks: %w", err)
	}

	chunks := make([]domain.Chunk, 0, len(maps))
	for i, fields := range maps {
		c, err := decodeFields(r.id(keys[i]), fields)
		if err != nil {
			r.logger.Warn("skipping undecodable chunk", zap.String("key", keys[i]), zap.Error(err))
			continue
		}
		chunks = append(chunks, c)
	}
	return chunks, nil
}

// Candidates returns up to batchSize chunks that carry an embedding and
// satisfy the filter. The type filter narrows the key scan; the entity-id
// filter is applied to the decoded metadata.
func (r *Repo) Candidates(ctx context.Context, f domain.Filter, batchSize int) ([]domain.Chunk, error) {
	keys, err := r.store.Scan(ctx, r.pattern(f.Type))
	if err != nil {
		return nil, fmt.Errorf("scan candidates: %w", err)
	}
	sort.Strings(keys)

	out := make([]domain.Chunk, 0, batchSize)
	for start := 0; start < len(keys) && len(out) < batchSize; start += batchSize {
		end := start + batchSize
		if end > len(keys) {
			end = len(keys)
		}
		maps, err := r.store.HGetAllMulti(ctx, keys[start:end])
		if err != nil {
			return nil, fmt.Errorf("fetch candidates: %w", err)
		}
		for i, fields := range maps {
			c, err := decodeFields(r.id(keys[start+i]), fields)
			if err != nil {
				r.logger.Warn("skipping undecodable candidate", zap.String("key", keys[start+i]), zap.Error(err))
				continue
			}
			if !c.HasEmbedding() || !f.Match(c.Metadata) {
				continue
			}
			out = append(out, c)
			if len(out) == batchSize {
				break
			}
		}
	}
	return out, nil
}

// Stats aggregates chunk counts. A record with unparsable metadata increments
// the reserved "invalid" bucket instead of failing the aggregation.
func (r *Repo) Stats(ctx context.Context) (domain.StoreStats, error) {
	keys, err := r.store.Scan(ctx, r.pattern(""))
	if err != nil {
		return domain.StoreStats{}, fmt.Errorf("scan chunks: %w", err)
	}

	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return domain.StoreStats{}, fmt.Errorf("fetch chunks: %w", err)
	}

	stats := domain.StoreStats{ByType: make(map[string]int)}
	for i, fields := range maps {
		stats.TotalDocuments++
		if fields[fieldEmbedding] != "" {
			stats.DocumentsWithEmbeddings++
		}
		c, err := decodeFields(r.id(keys[i]), fields)
		if err != nil && errors.Is(err, domain.ErrInvalidMetadata) {
			stats.ByType[domain.InvalidTypeBucket]++
			continue
		}
		stats.ByType[string(c.Metadata.Type)]++
	}
	return stats, nil
}

func (r *Repo) key(id string) string {
	return r.prefix + "chunk:" + id
}

// pattern builds the scan pattern; a non-empty type narrows to that type's
// id namespace (ids are "<type>-<entityID>").
func (r *Repo) pattern(t domain.EntityType) string {
	if t == "" {
		return r.prefix + "chunk:*"
	}
	return fmt.Sprintf("%schunk:%s-*", r.prefix, t)
}

func (r *Repo) id(key string) string {
	return strings.TrimPrefix(key, r.prefix+"chunk:")
}
