package sdk

import (
	"time"

	"go.uber.org/zap"

	"github.com/sitedock/assist/internal/domain"
	indexeruc "github.com/sitedock/assist/internal/usecase/indexer"
)

type clientConfig struct {
	addrs     []string
	password  string
	keyPrefix string
	logger    *zap.Logger

	embedder            domain.Embedder
	embeddingAPIKey     string
	embeddingBaseURL    string
	embeddingModel      string
	embeddingDimensions int
	cacheTTL            time.Duration

	generator           domain.Generator
	generationAPIKey    string
	generationBaseURL   string
	generationModel     string
	generationMaxTokens int

	dataSource  indexeruc.DataSource
	sourcePath  string
	window      time.Duration
	resultLimit int
}

// Option configures the Client.
type Option func(*clientConfig)

// WithDatabase sets the Redis/Valkey addresses.
func WithDatabase(addrs ...string) Option {
	return func(c *clientConfig) { c.addrs = addrs }
}

// WithPassword sets the database password.
func WithPassword(password string) Option {
	return func(c *clientConfig) { c.password = password }
}

// WithKeyPrefix namespaces all keys. Defaults to "assist:".
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) { c.keyPrefix = prefix }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithOpenAIEmbedding configures the built-in OpenAI-compatible embedder.
// model and dimensions may be zero to use provider defaults.
func WithOpenAIEmbedding(apiKey, baseURL, model string, dimensions int) Option {
	return func(c *clientConfig) {
		c.embeddingAPIKey = apiKey
		c.embeddingBaseURL = baseURL
		c.embeddingModel = model
		c.embeddingDimensions = dimensions
	}
}

// WithEmbeddingCacheTTL expires cached embeddings. 0 means no expiry.
func WithEmbeddingCacheTTL(ttl time.Duration) Option {
	return func(c *clientConfig) { c.cacheTTL = ttl }
}

// WithEmbedder replaces the built-in embedder chain entirely.
func WithEmbedder(e domain.Embedder) Option {
	return func(c *clientConfig) { c.embedder = e }
}

// WithOpenAIGeneration configures the built-in OpenAI-compatible generator.
func WithOpenAIGeneration(apiKey, baseURL, model string, maxTokens int) Option {
	return func(c *clientConfig) {
		c.generationAPIKey = apiKey
		c.generationBaseURL = baseURL
		c.generationModel = model
		c.generationMaxTokens = maxTokens
	}
}

// WithGenerator replaces the built-in generator entirely.
func WithGenerator(g domain.Generator) Option {
	return func(c *clientConfig) { c.generator = g }
}

// WithDataSource supplies the host application's entity listings directly.
func WithDataSource(ds indexeruc.DataSource) Option {
	return func(c *clientConfig) { c.dataSource = ds }
}

// WithSourceFile reads entities from a YAML snapshot file instead.
func WithSourceFile(path string) Option {
	return func(c *clientConfig) { c.sourcePath = path }
}

// WithIndexWindow sets the incremental indexing trailing window.
func WithIndexWindow(w time.Duration) Option {
	return func(c *clientConfig) { c.window = w }
}

// WithResultLimit sets the default number of sources per question.
func WithResultLimit(n int) Option {
	return func(c *clientConfig) { c.resultLimit = n }
}
