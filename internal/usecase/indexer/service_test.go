package indexer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sitedock/assist/internal/domain"
)

// fakeSource returns canned entities and records the since it was asked for.
type fakeSource struct {
	projects  []domain.Project
	materials []domain.Material
	tasks     []domain.Task

	materialsErr error

	lastSince time.Time
}

func (f *fakeSource) Projects(_ context.Context, since time.Time) ([]domain.Project, error) {
	f.lastSince = since
	return f.projects, nil
}

func (f *fakeSource) Materials(_ context.Context, since time.Time) ([]domain.Material, error) {
	if f.materialsErr != nil {
		return nil, f.materialsErr
	}
	return f.materials, nil
}

func (f *fakeSource) Racks(_ context.Context, _ time.Time) ([]domain.Rack, error)     { return nil, nil }
func (f *fakeSource) Machines(_ context.Context, _ time.Time) ([]domain.Machine, error) {
	return nil, nil
}
func (f *fakeSource) Clients(_ context.Context, _ time.Time) ([]domain.Client, error) { return nil, nil }
func (f *fakeSource) Subcontractors(_ context.Context, _ time.Time) ([]domain.Subcontractor, error) {
	return nil, nil
}
func (f *fakeSource) Orders(_ context.Context, _ time.Time) ([]domain.Order, error) { return nil, nil }
func (f *fakeSource) ProgressStates(_ context.Context, _ time.Time) ([]domain.ProgressState, error) {
	return nil, nil
}
func (f *fakeSource) Expenses(_ context.Context, _ time.Time) ([]domain.Expense, error) {
	return nil, nil
}
func (f *fakeSource) Tasks(_ context.Context, _ time.Time) ([]domain.Task, error) {
	return f.tasks, nil
}

// fakeStore records added and removed chunks.
type fakeStore struct {
	added   map[string]domain.Chunk
	removed []string
	cleared int
	addErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{added: make(map[string]domain.Chunk)}
}

func (f *fakeStore) AddDocument(_ context.Context, c domain.Chunk) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added[c.ID] = c
	return nil
}

func (f *fakeStore) RemoveDocument(_ context.Context, id string) error {
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeStore) ClearStore(_ context.Context) error {
	f.cleared++
	f.added = make(map[string]domain.Chunk)
	return nil
}

type stubEmbedder struct {
	err   error
	calls int
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	s.calls++
	if s.err != nil {
		return domain.EmbeddingResult{}, s.err
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}, nil
}

func TestFullIndex_IndexesAllEntities(t *testing.T) {
	src := &fakeSource{
		projects:  []domain.Project{{ID: "p1", Name: "Office"}},
		materials: []domain.Material{{ID: "m1", Name: "Cement"}, {ID: "m2", Name: "Sand"}},
		tasks:     []domain.Task{{ID: "t1", Title: "Fix roof"}},
	}
	store := newFakeStore()
	svc := New(src, store, &stubEmbedder{}, nil)

	rep, err := svc.FullIndex(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rep.Mode != "full" {
		t.Errorf("mode = %q, want full", rep.Mode)
	}
	if rep.Indexed != 4 {
		t.Errorf("indexed = %d, want 4", rep.Indexed)
	}
	if rep.Failed != 0 || rep.FailedPasses != 0 {
		t.Errorf("unexpected failures: %+v", rep)
	}
	if !src.lastSince.IsZero() {
		t.Error("full index must load everything (zero since)")
	}

	for _, id := range []string{"project-p1", "material-m1", "material-m2", "task-t1"} {
		if _, ok := store.added[id]; !ok {
			t.Errorf("chunk %s not stored", id)
		}
	}
}

func TestFullIndex_ProjectFamilyExpanded(t *testing.T) {
	src := &fakeSource{projects: []domain.Project{{
		ID:   "p1",
		Name: "Office",
		Notes: []domain.Note{
			{ID: "n1", ProjectID: "p1", Text: "call the electrician"},
		},
		Attachments: []domain.Attachment{
			{ID: "a1", ProjectID: "p1", FileName: "plan.pdf"},
		},
		Remarks: []domain.InspectionRemark{
			{ID: "r1", ProjectID: "p1", Text: "crack in wall"},
		},
	}}}
	store := newFakeStore()
	svc := New(src, store, &stubEmbedder{}, nil)

	rep, err := svc.FullIndex(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Indexed != 4 {
		t.Errorf("indexed = %d, want 4 (project + note + attachment + remark)", rep.Indexed)
	}
	for _, id := range []string{"project-p1", "note-n1", "attachment-a1", "remark-r1"} {
		if _, ok := store.added[id]; !ok {
			t.Errorf("chunk %s not stored", id)
		}
	}
}

func TestFullIndex_PassFailureIsPartial(t *testing.T) {
	src := &fakeSource{
		projects:     []domain.Project{{ID: "p1", Name: "Office"}},
		materialsErr: errors.New("db gone"),
	}
	store := newFakeStore()
	svc := New(src, store, &stubEmbedder{}, nil)

	rep, err := svc.FullIndex(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rep.FailedPasses != 1 {
		t.Errorf("failed passes = %d, want 1", rep.FailedPasses)
	}
	if rep.Indexed != 1 {
		t.Errorf("indexed = %d, want 1 (other passes continue)", rep.Indexed)
	}
	if len(rep.Errors) == 0 {
		t.Error("expected pass error to be reported")
	}
}

func TestFullIndex_EmbedFailureCountsEntity(t *testing.T) {
	src := &fakeSource{materials: []domain.Material{{ID: "m1", Name: "Cement"}}}
	store := newFakeStore()
	svc := New(src, store, &stubEmbedder{err: errors.New("provider down")}, nil)

	rep, err := svc.FullIndex(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Failed != 1 {
		t.Errorf("failed = %d, want 1", rep.Failed)
	}
	if len(store.added) != 0 {
		t.Error("failed entity must not be stored")
	}
}

func TestFullIndex_ClearBeforeFull(t *testing.T) {
	store := newFakeStore()
	svc := New(&fakeSource{}, store, &stubEmbedder{}, nil).WithClearBeforeFull(true)

	if _, err := svc.FullIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.cleared != 1 {
		t.Errorf("cleared = %d, want 1", store.cleared)
	}
}

func TestFullIndex_NoClearByDefault(t *testing.T) {
	store := newFakeStore()
	svc := New(&fakeSource{}, store, &stubEmbedder{}, nil)

	if _, err := svc.FullIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.cleared != 0 {
		t.Error("full index must not clear the store unless configured")
	}
}

func TestIncrementalIndex_UsesTrailingWindow(t *testing.T) {
	src := &fakeSource{}
	svc := New(src, newFakeStore(), &stubEmbedder{}, nil).WithWindow(6 * time.Hour)

	before := time.Now().Add(-6 * time.Hour)
	if _, err := svc.IncrementalIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after := time.Now().Add(-6 * time.Hour)

	if src.lastSince.Before(before) || src.lastSince.After(after) {
		t.Errorf("since = %v, want about %v", src.lastSince, before)
	}
}

func TestReindex_Idempotent(t *testing.T) {
	src := &fakeSource{materials: []domain.Material{{ID: "m1", Name: "Cement"}}}
	store := newFakeStore()
	svc := New(src, store, &stubEmbedder{}, nil)

	ctx := context.Background()
	if _, err := svc.FullIndex(ctx); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := svc.FullIndex(ctx); err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(store.added) != 1 {
		t.Errorf("expected one chunk after re-index, got %d", len(store.added))
	}
}

func TestRemoveEntity(t *testing.T) {
	store := newFakeStore()
	svc := New(&fakeSource{}, store, &stubEmbedder{}, nil)

	if err := svc.RemoveEntity(context.Background(), domain.TypeProject, "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.removed) != 1 || store.removed[0] != "project-p1" {
		t.Errorf("removed = %v, want [project-p1]", store.removed)
	}
}
