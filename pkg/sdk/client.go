// Package sdk embeds the retrieval subsystem in a host Go application.
// The host wires its own data source and AI providers and gets the same
// indexing and question answering pipeline the HTTP server exposes, without
// running a separate process.
package sdk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sitedock/assist/internal/db"
	dbRedis "github.com/sitedock/assist/internal/db/redis"
	"github.com/sitedock/assist/internal/domain"
	chunkrepo "github.com/sitedock/assist/internal/repository/chunk"
	"github.com/sitedock/assist/internal/repository/embcache"
	"github.com/sitedock/assist/internal/source"
	openaiTransport "github.com/sitedock/assist/internal/transport/openai"
	indexeruc "github.com/sitedock/assist/internal/usecase/indexer"
	queryuc "github.com/sitedock/assist/internal/usecase/query"
	storeuc "github.com/sitedock/assist/internal/usecase/store"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the embedded SDK entry point.
type Client struct {
	store   db.Store
	storeS  *storeuc.Service
	indexer *indexeruc.Service
	query   *queryuc.Service
}

// New creates a Client and connects to the database.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix: "assist:",
		logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("assist: database address required (use WithDatabase)")
	}
	if cfg.embedder == nil && cfg.embeddingAPIKey == "" {
		return nil, errors.New("assist: embedder required (use WithOpenAIEmbedding or WithEmbedder)")
	}
	if cfg.generator == nil && cfg.generationAPIKey == "" {
		return nil, errors.New("assist: generator required (use WithOpenAIGeneration or WithGenerator)")
	}
	if cfg.dataSource == nil && cfg.sourcePath == "" {
		return nil, errors.New("assist: data source required (use WithDataSource or WithSourceFile)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("assist: create store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("assist: database not ready: %w", err)
	}

	embedder := cfg.embedder
	if embedder == nil {
		base := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
			APIKey:     cfg.embeddingAPIKey,
			BaseURL:    cfg.embeddingBaseURL,
			Model:      cfg.embeddingModel,
			Dimensions: cfg.embeddingDimensions,
			Logger:     cfg.logger,
		})
		embedder = embcache.New(base, store, cfg.keyPrefix, cfg.embeddingModel, cfg.cacheTTL, nil, cfg.logger)
	}

	generator := cfg.generator
	if generator == nil {
		generator = openaiTransport.NewGenerator(&openaiTransport.GeneratorConfig{
			APIKey:    cfg.generationAPIKey,
			BaseURL:   cfg.generationBaseURL,
			Model:     cfg.generationModel,
			MaxTokens: cfg.generationMaxTokens,
			Logger:    cfg.logger,
		})
	}

	dataSource := cfg.dataSource
	if dataSource == nil {
		dataSource = source.New(cfg.sourcePath, cfg.logger)
	}

	repo := chunkrepo.New(store, cfg.keyPrefix, cfg.logger)
	storeSvc := storeuc.New(repo, cfg.logger)

	indexerSvc := indexeruc.New(dataSource, storeSvc, embedder, cfg.logger)
	if cfg.window > 0 {
		indexerSvc.WithWindow(cfg.window)
	}

	querySvc := queryuc.New(storeSvc, embedder, generator, cfg.logger)
	if cfg.resultLimit > 0 {
		querySvc.WithLimit(cfg.resultLimit)
	}

	return &Client{
		store:   store,
		storeS:  storeSvc,
		indexer: indexerSvc,
		query:   querySvc,
	}, nil
}

// Ask answers a question grounded in the indexed business data.
func (c *Client) Ask(ctx context.Context, question string) domain.Answer {
	return c.query.Ask(ctx, domain.Query{Question: question})
}

// AskScoped answers a question within a metadata scope.
func (c *Client) AskScoped(ctx context.Context, question string, scope domain.Filter) domain.Answer {
	return c.query.Ask(ctx, domain.Query{Question: question, Scope: scope})
}

// IndexAll runs a full indexing pass over every entity type.
func (c *Client) IndexAll(ctx context.Context) (indexeruc.Report, error) {
	return c.indexer.FullIndex(ctx)
}

// IndexRecent runs an incremental indexing pass over the trailing window.
func (c *Client) IndexRecent(ctx context.Context) (indexeruc.Report, error) {
	return c.indexer.IncrementalIndex(ctx)
}

// RemoveEntity deletes the chunk derived from one entity.
func (c *Client) RemoveEntity(ctx context.Context, t domain.EntityType, entityID string) error {
	return c.indexer.RemoveEntity(ctx, t, entityID)
}

// Stats returns chunk counts for diagnostics.
func (c *Client) Stats(ctx context.Context) (domain.StoreStats, error) {
	return c.storeS.GetStats(ctx)
}

// Clear wipes every indexed chunk.
func (c *Client) Clear(ctx context.Context) error {
	return c.storeS.ClearStore(ctx)
}

// Close releases the database connection.
func (c *Client) Close() {
	c.store.Close()
}
