package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sitedock/assist/internal/domain"
	"github.com/sitedock/assist/internal/scheduler"
	healthuc "github.com/sitedock/assist/internal/usecase/health"
	indexeruc "github.com/sitedock/assist/internal/usecase/indexer"
	queryuc "github.com/sitedock/assist/internal/usecase/query"
	storeuc "github.com/sitedock/assist/internal/usecase/store"
)

const maxQuestionLength = 2000

// errorCode is a machine-readable error discriminator in error responses.
type errorCode string

const (
	codeBadRequest       errorCode = "bad_request"
	codeValidationFailed errorCode = "validation_failed"
	codeNotFound         errorCode = "not_found"
	codeProviderError    errorCode = "provider_error"
	codeInternalError    errorCode = "internal_error"
)

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// Server exposes the retrieval subsystem over HTTP.
type Server struct {
	query    *queryuc.Service
	indexer  *indexeruc.Service
	store    *storeuc.Service
	health   *healthuc.Service
	triggers []*scheduler.Trigger
	logger   *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	query *queryuc.Service,
	indexer *indexeruc.Service,
	store *storeuc.Service,
	health *healthuc.Service,
	triggers []*scheduler.Trigger,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		query:    query,
		indexer:  indexer,
		store:    store,
		health:   health,
		triggers: triggers,
		logger:   logger,
	}
}

// Routes mounts all handlers on a router. Middleware is applied by the caller.
func (s *Server) Routes(r chi.Router) {
	r.Post("/query", s.handleQuery)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/index/full", s.handleFullIndex)
		r.Post("/index/incremental", s.handleIncrementalIndex)
		r.Delete("/index/{type}/{entityId}", s.handleRemoveEntity)
		r.Get("/stats", s.handleStats)
		r.Delete("/store", s.handleClearStore)
		r.Get("/triggers", s.handleTriggers)
	})
}

// queryRequest is the POST /query body.
type queryRequest struct {
	Question string `json:"question"`
	Type     string `json:"type,omitempty"`
	EntityID string `json:"entity_id,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// querySource is one retrieved source in a query response.
type querySource struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	EntityID   string  `json:"entity_id"`
	EntityName string  `json:"entity_name,omitempty"`
	Similarity float64 `json:"similarity"`
}

// queryResponse is the POST /query body returned to the chat consumer.
type queryResponse struct {
	Answer       string        `json:"answer"`
	Confidence   float64       `json:"confidence"`
	Presentation string        `json:"presentation"`
	Sources      []querySource `json:"sources"`
	Question     string        `json:"question"`
	ProcessingMs int64         `json:"processing_ms"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Question == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "question is required")
		return
	}
	if len(req.Question) > maxQuestionLength {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "question is too long")
		return
	}

	scope := domain.Filter{EntityID: req.EntityID}
	if req.Type != "" {
		t, ok := domain.ParseEntityType(req.Type)
		if !ok {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "unknown entity type: "+req.Type)
			return
		}
		scope.Type = t
	}

	answer := s.query.Ask(r.Context(), domain.Query{
		Question: req.Question,
		Scope:    scope,
		Limit:    req.Limit,
	})

	sources := make([]querySource, len(answer.Sources))
	for i, src := range answer.Sources {
		sources[i] = querySource{
			ID:         src.Chunk.ID,
			Type:       string(src.Chunk.Metadata.Type),
			EntityID:   src.Chunk.Metadata.EntityID,
			EntityName: src.Chunk.Metadata.EntityName,
			Similarity: src.Similarity,
		}
	}

	writeJSON(w, http.StatusOK, queryResponse{
		Answer:       answer.Text,
		Confidence:   answer.Confidence,
		Presentation: string(answer.Presentation()),
		Sources:      sources,
		Question:     answer.Question,
		ProcessingMs: answer.ProcessingTime.Milliseconds(),
	})
}

func (s *Server) handleFullIndex(w http.ResponseWriter, r *http.Request) {
	report, err := s.indexer.FullIndex(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleIncrementalIndex(w http.ResponseWriter, r *http.Request) {
	report, err := s.indexer.IncrementalIndex(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleRemoveEntity(w http.ResponseWriter, r *http.Request) {
	t, ok := domain.ParseEntityType(chi.URLParam(r, "type"))
	if !ok {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			"unknown entity type: "+chi.URLParam(r, "type"))
		return
	}

	entityID := chi.URLParam(r, "entityId")
	if entityID == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "entity id is required")
		return
	}

	if err := s.indexer.RemoveEntity(r.Context(), t, entityID); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetStats(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleClearStore(w http.ResponseWriter, r *http.Request) {
	if err := s.store.ClearStore(r.Context()); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTriggers(w http.ResponseWriter, r *http.Request) {
	statuses := make([]scheduler.Status, len(s.triggers))
	for i, t := range s.triggers {
		statuses[i] = t.Status()
	}
	writeJSON(w, http.StatusOK, map[string]any{"triggers": statuses})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, report)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	switch {
	case errors.Is(err, domain.ErrChunkNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, domain.ErrChunkNotFound.Error())
	case errors.Is(err, domain.ErrInvalidQuery), errors.Is(err, domain.ErrDimensionMismatch):
		writeError(w, http.StatusBadRequest, codeValidationFailed, safeDomainMessage(err))
	case errors.Is(err, domain.ErrEmbeddingProvider), errors.Is(err, domain.ErrGenerationProvider):
		writeError(w, http.StatusBadGateway, codeProviderError, safeDomainMessage(err))
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrChunkNotFound,
		domain.ErrDimensionMismatch,
		domain.ErrInvalidMetadata,
		domain.ErrInvalidQuery,
		domain.ErrEmbeddingProvider,
		domain.ErrGenerationProvider,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
