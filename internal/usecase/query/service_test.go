package query

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sitedock/assist/internal/domain"
)

type fakeSearcher struct {
	results []domain.Scored
	err     error
	gotEmb  []float32
	gotLim  int
	gotFlt  domain.Filter
}

func (f *fakeSearcher) SearchSimilar(_ context.Context, emb []float32, limit int, flt domain.Filter) ([]domain.Scored, error) {
	f.gotEmb, f.gotLim, f.gotFlt = emb, limit, flt
	return f.results, f.err
}

type fakeEmbedder struct {
	vec []float32
	err error
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	if f.err != nil {
		return domain.EmbeddingResult{}, f.err
	}
	return domain.EmbeddingResult{Embedding: f.vec}, nil
}

type fakeGenerator struct {
	answer    string
	err       error
	gotPrompt string
	calls     int
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.gotPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func sourceChunk(id string, typ domain.EntityType, name, content string) domain.Scored {
	return domain.Scored{
		Chunk: domain.Chunk{
			ID:      id,
			Content: content,
			Metadata: domain.Metadata{
				Type:       typ,
				EntityID:   id,
				EntityName: name,
				UpdatedAt:  time.Now(),
			},
		},
		Similarity: 0.8,
	}
}

func TestAsk_HappyPath(t *testing.T) {
	search := &fakeSearcher{results: []domain.Scored{
		sourceChunk("material-m1", domain.TypeMaterial, "Cement", `Material "Cement": 200 kg in stock.`),
		sourceChunk("project-p1", domain.TypeProject, "Office", `Project "Office" has status active.`),
	}}
	gen := &fakeGenerator{answer: "There are 200 kg of cement in stock."}
	svc := New(search, &fakeEmbedder{vec: []float32{1, 0}}, gen, nil)

	answer := svc.Ask(context.Background(), domain.Query{Question: "How much cement is in stock?"})

	if answer.Text != "There are 200 kg of cement in stock." {
		t.Errorf("unexpected answer text: %q", answer.Text)
	}
	if len(answer.Sources) != 2 {
		t.Errorf("expected 2 sources, got %d", len(answer.Sources))
	}
	if answer.Confidence <= 0 {
		t.Errorf("expected positive confidence, got %v", answer.Confidence)
	}
	if answer.Question != "How much cement is in stock?" {
		t.Errorf("question not echoed: %q", answer.Question)
	}

	// Context blocks arrive numbered and in retrieval order.
	if !strings.Contains(gen.gotPrompt, "Source 1 (material: Cement):") {
		t.Errorf("prompt missing first source block:\n%s", gen.gotPrompt)
	}
	if !strings.Contains(gen.gotPrompt, "Source 2 (project: Office):") {
		t.Errorf("prompt missing second source block:\n%s", gen.gotPrompt)
	}
	if !strings.Contains(gen.gotPrompt, "Question: How much cement is in stock?") {
		t.Errorf("prompt missing question:\n%s", gen.gotPrompt)
	}
	if !strings.Contains(gen.gotPrompt, "never invent facts") {
		t.Errorf("prompt missing rules:\n%s", gen.gotPrompt)
	}
}

func TestAsk_NoResults_SkipsGeneration(t *testing.T) {
	gen := &fakeGenerator{answer: "should not be called"}
	svc := New(&fakeSearcher{}, &fakeEmbedder{vec: []float32{1, 0}}, gen, nil)

	answer := svc.Ask(context.Background(), domain.Query{Question: "anything?"})

	if gen.calls != 0 {
		t.Error("generator must not be called with an empty context")
	}
	if answer.Text != noInformationAnswer {
		t.Errorf("unexpected text: %q", answer.Text)
	}
	if answer.Confidence != 0 {
		t.Errorf("expected zero confidence, got %v", answer.Confidence)
	}
	if answer.Sources == nil || len(answer.Sources) != 0 {
		t.Errorf("expected empty (non-nil) sources, got %v", answer.Sources)
	}
}

func TestAsk_EmbedFailureDegrades(t *testing.T) {
	svc := New(&fakeSearcher{}, &fakeEmbedder{err: errors.New("provider down")}, &fakeGenerator{}, nil)

	answer := svc.Ask(context.Background(), domain.Query{Question: "q"})

	if answer.Text != failureAnswer {
		t.Errorf("unexpected text: %q", answer.Text)
	}
	if answer.Confidence != 0 {
		t.Errorf("expected zero confidence, got %v", answer.Confidence)
	}
}

func TestAsk_SearchFailureDegrades(t *testing.T) {
	svc := New(&fakeSearcher{err: errors.New("store down")}, &fakeEmbedder{vec: []float32{1}}, &fakeGenerator{}, nil)

	answer := svc.Ask(context.Background(), domain.Query{Question: "q"})
	if answer.Text != failureAnswer {
		t.Errorf("unexpected text: %q", answer.Text)
	}
}

func TestAsk_GenerateFailureDegrades(t *testing.T) {
	search := &fakeSearcher{results: []domain.Scored{
		sourceChunk("task-t1", domain.TypeTask, "Fix roof", "Task."),
	}}
	svc := New(search, &fakeEmbedder{vec: []float32{1}}, &fakeGenerator{err: errors.New("llm down")}, nil)

	answer := svc.Ask(context.Background(), domain.Query{Question: "q"})
	if answer.Text != failureAnswer {
		t.Errorf("unexpected text: %q", answer.Text)
	}
	if answer.Confidence != 0 {
		t.Errorf("expected zero confidence, got %v", answer.Confidence)
	}
}

func TestAsk_LimitAndScopePassedThrough(t *testing.T) {
	search := &fakeSearcher{}
	svc := New(search, &fakeEmbedder{vec: []float32{1, 0}}, &fakeGenerator{}, nil)

	scope := domain.Filter{Type: domain.TypeProject, EntityID: "p-1"}
	svc.Ask(context.Background(), domain.Query{Question: "q", Scope: scope, Limit: 7})

	if search.gotLim != 7 {
		t.Errorf("limit = %d, want 7", search.gotLim)
	}
	if search.gotFlt != scope {
		t.Errorf("scope = %+v, want %+v", search.gotFlt, scope)
	}
}

func TestAsk_DefaultLimitApplied(t *testing.T) {
	search := &fakeSearcher{}
	svc := New(search, &fakeEmbedder{vec: []float32{1, 0}}, &fakeGenerator{}, nil)

	svc.Ask(context.Background(), domain.Query{Question: "q"})
	if search.gotLim != DefaultLimit {
		t.Errorf("limit = %d, want default %d", search.gotLim, DefaultLimit)
	}
}
