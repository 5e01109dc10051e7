package indexer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sitedock/assist/internal/domain"
	"github.com/sitedock/assist/internal/format"
	"github.com/sitedock/assist/internal/metrics"
)

// DefaultWindow is the trailing time window of an incremental run.
const DefaultWindow = 24 * time.Hour

// Report summarizes a single indexing run. Passes fail independently:
// N of M entity types indexed is a partial success, not a total failure.
type Report struct {
	Mode         string        `json:"mode"`
	TotalPasses  int           `json:"total_passes"`
	FailedPasses int           `json:"failed_passes"`
	Indexed      int           `json:"indexed"`
	Failed       int           `json:"failed"`
	Errors       []string      `json:"errors,omitempty"`
	Duration     time.Duration `json:"duration"`
}

// Service drives the indexing pipeline: entity formatters + embedding
// generation + vector store upserts, in full and incremental modes.
type Service struct {
	source DataSource
	store  VectorStore
	embed  domain.Embedder
	logger *zap.Logger

	window          time.Duration
	clearBeforeFull bool
}

// New creates an indexing service with the default incremental window.
func New(source DataSource, store VectorStore, embed domain.Embedder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source: source,
		store:  store,
		embed:  embed,
		logger: logger,
		window: DefaultWindow,
	}
}

// WithWindow configures the incremental trailing window.
func (s *Service) WithWindow(w time.Duration) *Service {
	if w > 0 {
		s.window = w
	}
	return s
}

// WithClearBeforeFull makes a full run wipe the store first, trading stale
// orphan cleanup for a window of reduced recall during the rebuild.
func (s *Service) WithClearBeforeFull(clear bool) *Service {
	s.clearBeforeFull = clear
	return s
}

// FullIndex re-derives chunks for every entity of every supported type.
func (s *Service) FullIndex(ctx context.Context) (Report, error) {
	if s.clearBeforeFull {
		if err := s.store.ClearStore(ctx); err != nil {
			return Report{Mode: "full"}, fmt.Errorf("clear before full index: %w", err)
		}
	}
	return s.run(ctx, "full", time.Time{}), nil
}

// IncrementalIndex re-derives chunks only for entities updated within the
// trailing window, plus dependent sub-entities of changed project families.
// Cost is proportional to recent churn, not total data volume.
func (s *Service) IncrementalIndex(ctx context.Context) (Report, error) {
	return s.run(ctx, "incremental", time.Now().Add(-s.window)), nil
}

// RemoveEntity deletes the chunk derived from one entity. This is the only
// path that removes a chunk when its source entity is deleted; full reindex
// overwrites but never deletes orphans.
func (s *Service) RemoveEntity(ctx context.Context, t domain.EntityType, entityID string) error {
	id := domain.ChunkID(t, entityID)
	if err := s.store.RemoveDocument(ctx, id); err != nil {
		return fmt.Errorf("remove entity chunk %s: %w", id, err)
	}
	s.logger.Info("entity chunk removed", zap.String("id", id))
	return nil
}

// pass loads and formats all entities of one type eligible at since.
type pass struct {
	name string
	load func(ctx context.Context, since time.Time) ([]format.Result, error)
}

func (s *Service) run(ctx context.Context, mode string, since time.Time) Report {
	start := time.Now()
	rep := Report{Mode: mode}

	passes := s.passes()
	rep.TotalPasses = len(passes)

	for _, p := range passes {
		s.runPass(ctx, p, since, &rep)
	}

	rep.Duration = time.Since(start)

	status := "ok"
	if rep.FailedPasses > 0 || rep.Failed > 0 {
		status = "partial"
	}
	metrics.IndexRunsTotal.WithLabelValues(mode, status).Inc()
	metrics.IndexRunDuration.WithLabelValues(mode).Observe(rep.Duration.Seconds())

	s.logger.Info("indexing run finished",
		zap.String("mode", mode),
		zap.Int("passes", rep.TotalPasses),
		zap.Int("failed_passes", rep.FailedPasses),
		zap.Int("indexed", rep.Indexed),
		zap.Int("failed", rep.Failed),
		zap.Duration("duration", rep.Duration),
	)
	return rep
}

// runPass indexes one entity type. A pass failure is recorded and the run
// continues with the remaining types.
func (s *Service) runPass(ctx context.Context, p pass, since time.Time, rep *Report) {
	items, err := p.load(ctx, since)
	if err != nil {
		rep.FailedPasses++
		rep.Errors = append(rep.Errors, fmt.Sprintf("%s: %v", p.name, err))
		s.logger.Warn("entity pass failed", zap.String("pass", p.name), zap.Error(err))
		return
	}

	for _, item := range items {
		if err := s.indexOne(ctx, item); err != nil {
			rep.Failed++
			rep.Errors = append(rep.Errors, fmt.Sprintf("%s %s: %v", p.name, item.Metadata.EntityID, err))
			metrics.IndexedEntitiesTotal.WithLabelValues(p.name, "error").Inc()
			s.logger.Warn("entity indexing failed",
				zap.String("pass", p.name),
				zap.String("entity_id", item.Metadata.EntityID),
				zap.Error(err),
			)
			continue
		}
		rep.Indexed++
		metrics.IndexedEntitiesTotal.WithLabelValues(p.name, "ok").Inc()
	}
}

// indexOne embeds a formatted entity and upserts its chunk. The deterministic
// id makes re-indexing idempotent.
func (s *Service) indexOne(ctx context.Context, r format.Result) error {
	res, err := s.embed.Embed(ctx, r.Content)
	if err != nil {
		return fmt.Errorf("embed: %w", err)
	}

	c := domain.Chunk{
		ID:        domain.ChunkID(r.Metadata.Type, r.Metadata.EntityID),
		Content:   r.Content,
		Metadata:  r.Metadata,
		Embedding: res.Embedding,
	}
	if err := s.store.AddDocument(ctx, c); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}

func (s *Service) passes() []pass {
	return []pass{
		{name: string(domain.TypeProject), load: s.loadProjects},
		{name: string(domain.TypeMaterial), load: loadAs(s.source.Materials, format.Material)},
		{name: string(domain.TypeRack), load: loadAs(s.source.Racks, format.Rack)},
		{name: string(domain.TypeMachine), load: loadAs(s.source.Machines, format.Machine)},
		{name: string(domain.TypeClient), load: loadAs(s.source.Clients, format.Client)},
		{name: string(domain.TypeSubcontractor), load: loadAs(s.source.Subcontractors, format.Subcontractor)},
		{name: string(domain.TypeOrder), load: loadAs(s.source.Orders, format.Order)},
		{name: string(domain.TypeProgress), load: loadAs(s.source.ProgressStates, format.ProgressState)},
		{name: string(domain.TypeExpense), load: loadAs(s.source.Expenses, format.Expense)},
		{name: string(domain.TypeTask), load: loadAs(s.source.Tasks, format.Task)},
	}
}

// loadProjects expands each project family into the project chunk plus one
// chunk per nested note, attachment, and inspection remark.
func (s *Service) loadProjects(ctx context.Context, since time.Time) ([]format.Result, error) {
	projects, err := s.source.Projects(ctx, since)
	if err != nil {
		return nil, err
	}

	var out []format.Result
	for _, p := range projects {
		out = append(out, format.Project(p))
		for _, n := range p.Notes {
			out = append(out, format.Note(p.Name, n))
		}
		for _, a := range p.Attachments {
			out = append(out, format.Attachment(p.Name, a))
		}
		for _, r := range p.Remarks {
			out = append(out, format.InspectionRemark(p.Name, r))
		}
	}
	return out, nil
}

// loadAs adapts a typed source listing and its formatter into a pass loader.
func loadAs[E any](
	list func(ctx context.Context, since time.Time) ([]E, error),
	fmtFn func(E) format.Result,
) func(ctx context.Context, since time.Time) ([]format.Result, error) {
	return func(ctx context.Context, since time.Time) ([]format.Result, error) {
		items, err := list(ctx, since)
		if err != nil {
			return nil, err
		}
		out := make([]format.Result, len(items))
		for i, it := range items {
			out[i] = fmtFn(it)
		}
		return out, nil
	}
}
