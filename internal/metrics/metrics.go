package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for the RAG subsystem.
var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assist",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "assist",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assist",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assist",
			Name:      "generation_requests_total",
			Help:      "Total number of answer generation requests",
		},
		[]string{"model", "status"},
	)

	GenerationRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "assist",
			Name:      "generation_request_duration_seconds",
			Help:      "Answer generation duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"model"},
	)

	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assist",
			Name:      "queries_total",
			Help:      "RAG queries by outcome",
		},
		[]string{"outcome"}, // ok / no_results / embed_failed / search_failed / generate_failed
	)

	QueryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "assist",
			Name:      "query_duration_seconds",
			Help:      "End-to-end query processing time",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	QueryConfidence = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "assist",
			Name:      "query_confidence",
			Help:      "Confidence scores of answered queries",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 10),
		},
	)

	IndexRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assist",
			Name:      "index_runs_total",
			Help:      "Indexing runs by mode and outcome",
		},
		[]string{"mode", "status"},
	)

	IndexRunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "assist",
			Name:      "index_run_duration_seconds",
			Help:      "Indexing run duration in seconds",
			Buckets:   []float64{0.5, 1, 5, 15, 60, 300, 900},
		},
		[]string{"mode"},
	)

	IndexedEntitiesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assist",
			Name:      "indexed_entities_total",
			Help:      "Entities processed by the indexing pipeline",
		},
		[]string{"type", "status"},
	)
)

var registered bool

// Register registers all RAG metrics. Must be called once from main (no init()).
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(
		EmbeddingRequestsTotal,
		EmbeddingRequestDuration,
		EmbeddingCacheTotal,
		GenerationRequestsTotal,
		GenerationRequestDuration,
		QueriesTotal,
		QueryDuration,
		QueryConfidence,
		IndexRunsTotal,
		IndexRunDuration,
		IndexedEntitiesTotal,
	)
	registered = true
}
