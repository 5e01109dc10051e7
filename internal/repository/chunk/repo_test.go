package chunk

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sitedock/assist/internal/domain"
)

// fakeHashStore is an in-memory hash store with glob-prefix Scan.
type fakeHashStore struct {
	hashes map[string]map[string]string
}

func newFakeHashStore() *fakeHashStore {
	return &fakeHashStore{hashes: make(map[string]map[string]string)}
}

func (f *fakeHashStore) HSet(_ context.Context, key string, fields map[string]string) error {
	cp := make(map[string]string, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	f.hashes[key] = cp
	return nil
}

func (f *fakeHashStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	h, ok := f.hashes[key]
	if !ok {
		return map[string]string{}, nil
	}
	return h, nil
}

func (f *fakeHashStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	out := make([]map[string]string, len(keys))
	for i, k := range keys {
		h, _ := f.HGetAll(ctx, k)
		out[i] = h
	}
	return out, nil
}

func (f *fakeHashStore) Del(_ context.Context, key string) error {
	delete(f.hashes, key)
	return nil
}

func (f *fakeHashStore) Scan(_ context.Context, pattern string) ([]string, error) {
	prefix := strings.TrimSuffix(pattern, "*")
	var keys []string
	for k := range f.hashes {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func testChunk(id string, typ domain.EntityType, vec []float32) domain.Chunk {
	return domain.Chunk{
		ID:      id,
		Content: "content of " + id,
		Metadata: domain.Metadata{
			Type:     typ,
			EntityID: strings.TrimPrefix(id, string(typ)+"-"),
		},
		Embedding: vec,
		CreatedAt: time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC),
	}
}

func TestUpsertGet_Roundtrip(t *testing.T) {
	repo := New(newFakeHashStore(), "test:", nil)
	ctx := context.Background()

	c := testChunk("project-p1", domain.TypeProject, []float32{0.1, 0.2, 0.3})
	created, err := repo.Upsert(ctx, c)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !created {
		t.Error("expected created=true on first write")
	}

	got, err := repo.Get(ctx, "project-p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Content != c.Content {
		t.Errorf("content = %q, want %q", got.Content, c.Content)
	}
	if got.Metadata.Type != domain.TypeProject || got.Metadata.EntityID != "p1" {
		t.Errorf("metadata = %+v", got.Metadata)
	}
	if len(got.Embedding) != 3 || got.Embedding[1] != 0.2 {
		t.Errorf("embedding = %v", got.Embedding)
	}
	if !got.CreatedAt.Equal(c.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, c.CreatedAt)
	}
}

func TestUpsert_PreservesCreatedAt(t *testing.T) {
	repo := New(newFakeHashStore(), "test:", nil)
	ctx := context.Background()

	first := testChunk("project-p1", domain.TypeProject, nil)
	if _, err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := testChunk("project-p1", domain.TypeProject, []float32{1})
	second.Content = "updated"
	second.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	created, err := repo.Upsert(ctx, second)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if created {
		t.Error("expected created=false on overwrite")
	}

	got, err := repo.Get(ctx, "project-p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Content != "updated" {
		t.Errorf("content not overwritten: %q", got.Content)
	}
	if !got.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("created_at = %v, want original %v", got.CreatedAt, first.CreatedAt)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := New(newFakeHashStore(), "test:", nil)
	_, err := repo.Get(context.Background(), "nope")
	if !errors.Is(err, domain.ErrChunkNotFound) {
		t.Errorf("expected ErrChunkNotFound, got %v", err)
	}
}

func TestRemove_Idempotent(t *testing.T) {
	repo := New(newFakeHashStore(), "test:", nil)
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, testChunk("task-t1", domain.TypeTask, nil)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.Remove(ctx, "task-t1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := repo.Remove(ctx, "task-t1"); err != nil {
		t.Errorf("second remove must not fail: %v", err)
	}
	if _, err := repo.Get(ctx, "task-t1"); !errors.Is(err, domain.ErrChunkNotFound) {
		t.Errorf("expected chunk gone, got %v", err)
	}
}

func TestClear_RemovesAll(t *testing.T) {
	store := newFakeHashStore()
	repo := New(store, "test:", nil)
	ctx := context.Background()

	for _, id := range []string{"project-p1", "material-m1"} {
		if _, err := repo.Upsert(ctx, testChunk(id, domain.TypeProject, nil)); err != nil {
			t.Fatalf("upsert %s: %v", id, err)
		}
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(store.hashes) != 0 {
		t.Errorf("expected empty store, got %d keys", len(store.hashes))
	}
}

func TestCandidates_TypeFilterAndEmbeddingOnly(t *testing.T) {
	repo := New(newFakeHashStore(), "test:", nil)
	ctx := context.Background()

	chunks := []domain.Chunk{
		testChunk("project-p1", domain.TypeProject, []float32{1}),
		testChunk("project-p2", domain.TypeProject, nil), // no embedding
		testChunk("material-m1", domain.TypeMaterial, []float32{1}),
	}
	for _, c := range chunks {
		if _, err := repo.Upsert(ctx, c); err != nil {
			t.Fatalf("upsert %s: %v", c.ID, err)
		}
	}

	got, err := repo.Candidates(ctx, domain.Filter{Type: domain.TypeProject}, 10)
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if len(got) != 1 || got[0].ID != "project-p1" {
		t.Errorf("expected only embedded project chunk, got %+v", got)
	}
}

func TestCandidates_EntityIDSubstring(t *testing.T) {
	repo := New(newFakeHashStore(), "test:", nil)
	ctx := context.Background()

	for _, id := range []string{"project-alpha-1", "project-beta-2"} {
		if _, err := repo.Upsert(ctx, testChunk(id, domain.TypeProject, []float32{1})); err != nil {
			t.Fatalf("upsert %s: %v", id, err)
		}
	}

	got, err := repo.Candidates(ctx, domain.Filter{EntityID: "alpha"}, 10)
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if len(got) != 1 || got[0].ID != "project-alpha-1" {
		t.Errorf("expected substring match on entity id, got %+v", got)
	}
}

func TestCandidates_BatchBound(t *testing.T) {
	repo := New(newFakeHashStore(), "test:", nil)
	ctx := context.Background()

	for _, id := range []string{"task-a", "task-b", "task-c", "task-d"} {
		if _, err := repo.Upsert(ctx, testChunk(id, domain.TypeTask, []float32{1})); err != nil {
			t.Fatalf("upsert %s: %v", id, err)
		}
	}

	got, err := repo.Candidates(ctx, domain.Filter{}, 2)
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected batch bound of 2, got %d", len(got))
	}
}

func TestStats_InvalidMetadataBucket(t *testing.T) {
	store := newFakeHashStore()
	repo := New(store, "test:", nil)
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, testChunk("project-p1", domain.TypeProject, []float32{1})); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	// A record written by an older version with broken metadata.
	store.hashes["test:chunk:garbled-x"] = map[string]string{
		"content":  "text",
		"metadata": "{not json",
	}

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalDocuments != 2 {
		t.Errorf("total = %d, want 2", stats.TotalDocuments)
	}
	if stats.DocumentsWithEmbeddings != 1 {
		t.Errorf("with embeddings = %d, want 1", stats.DocumentsWithEmbeddings)
	}
	if stats.ByType[domain.InvalidTypeBucket] != 1 {
		t.Errorf("invalid bucket = %d, want 1", stats.ByType[domain.InvalidTypeBucket])
	}
	if stats.ByType["project"] != 1 {
		t.Errorf("project bucket = %d, want 1", stats.ByType["project"])
	}
}
