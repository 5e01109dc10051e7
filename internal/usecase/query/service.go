package query

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sitedock/assist/internal/domain"
	"github.com/sitedock/assist/internal/metrics"
)

// DefaultLimit is the default number of sources retrieved per question.
const DefaultLimit = 5

// Fixed answer texts for the two degraded outcomes. The answer shape is
// always well-formed; raw provider errors never reach the consumer.
const (
	noInformationAnswer = "I could not find any relevant information on that in the current business data. " +
		"Try rephrasing the question or narrowing it to a specific project."
	failureAnswer = "Sorry, I cannot answer that right now because of a temporary problem. " +
		"Please try again in a moment."
)

// Service orchestrates a query end to end: cached embedding, vector search,
// context assembly, prompt construction, answer generation, and confidence
// scoring.
type Service struct {
	search Searcher
	embed  domain.Embedder
	gen    domain.Generator
	logger *zap.Logger

	limit int
	conf  ConfidenceConfig
	now   func() time.Time
}

// New creates a query service with default limit and confidence settings.
func New(search Searcher, embed domain.Embedder, gen domain.Generator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		search: search,
		embed:  embed,
		gen:    gen,
		logger: logger,
		limit:  DefaultLimit,
		conf:   DefaultConfidenceConfig(),
		now:    time.Now,
	}
}

// WithLimit configures the default source limit.
func (s *Service) WithLimit(limit int) *Service {
	if limit > 0 {
		s.limit = limit
	}
	return s
}

// WithConfidence configures the confidence reference values.
func (s *Service) WithConfidence(cfg ConfidenceConfig) *Service {
	s.conf = cfg
	return s
}

// Ask answers a question grounded in retrieved chunks. It always returns a
// well-formed Answer: failures degrade to a generic text with confidence 0.
func (s *Service) Ask(ctx context.Context, q domain.Query) domain.Answer {
	start := s.now()

	limit := q.Limit
	if limit <= 0 {
		limit = s.limit
	}

	emb, err := s.embed.Embed(ctx, q.Question)
	if err != nil {
		s.logger.Error("question embedding failed", zap.Error(err))
		return s.degraded(q, start, "embed_failed")
	}

	sources, err := s.search.SearchSimilar(ctx, emb.Embedding, limit, q.Scope)
	if err != nil {
		s.logger.Error("vector search failed", zap.Error(err))
		return s.degraded(q, start, "search_failed")
	}

	// Terminal path: never call the language model with an empty context.
	if len(sources) == 0 {
		metrics.QueriesTotal.WithLabelValues("no_results").Inc()
		return s.finish(domain.Answer{
			Text:     noInformationAnswer,
			Sources:  []domain.Scored{},
			Question: q.Question,
		}, start)
	}

	prompt := buildPrompt(buildContext(sources), q.Question)

	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("answer generation failed", zap.Error(err))
		return s.degraded(q, start, "generate_failed")
	}

	answer := domain.Answer{
		Text:       text,
		Sources:    sources,
		Confidence: s.conf.confidence(sources, limit, s.now()),
		Question:   q.Question,
	}

	metrics.QueriesTotal.WithLabelValues("ok").Inc()
	metrics.QueryConfidence.Observe(answer.Confidence)
	return s.finish(answer, start)
}

func (s *Service) degraded(q domain.Query, start time.Time, reason string) domain.Answer {
	metrics.QueriesTotal.WithLabelValues(reason).Inc()
	return s.finish(domain.Answer{
		Text:     failureAnswer,
		Sources:  []domain.Scored{},
		Question: q.Question,
	}, start)
}

func (s *Service) finish(a domain.Answer, start time.Time) domain.Answer {
	a.ProcessingTime = s.now().Sub(start)
	metrics.QueryDuration.Observe(a.ProcessingTime.Seconds())
	return a
}
