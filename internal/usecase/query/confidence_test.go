package query

import (
	"testing"
	"time"

	"github.com/sitedock/assist/internal/domain"
)

func scoredSource(typ domain.EntityType, contentLen int, updated time.Time, extra map[string]string) domain.Scored {
	content := make([]byte, contentLen)
	for i := range content {
		content[i] = 'x'
	}
	return domain.Scored{
		Chunk: domain.Chunk{
			Content:  string(content),
			Metadata: domain.Metadata{Type: typ, UpdatedAt: updated, Extra: extra},
		},
		Similarity: 0.9,
	}
}

func TestConfidence_EmptySources(t *testing.T) {
	cfg := DefaultConfidenceConfig()
	if got := cfg.confidence(nil, 5, time.Now()); got != 0 {
		t.Errorf("expected 0 for empty sources, got %v", got)
	}
}

func TestConfidence_Capped(t *testing.T) {
	cfg := DefaultConfidenceConfig()
	now := time.Now()

	rich := map[string]string{"a": "1", "b": "2", "c": "3", "d": "4"}
	sources := []domain.Scored{
		scoredSource(domain.TypeProject, 500, now, rich),
		scoredSource(domain.TypeMaterial, 500, now, rich),
		scoredSource(domain.TypeOrder, 500, now, rich),
		scoredSource(domain.TypeTask, 500, now, rich),
		scoredSource(domain.TypeClient, 500, now, rich),
	}

	got := cfg.confidence(sources, 5, now)
	if got != cfg.Cap {
		t.Errorf("expected capped confidence %v, got %v", cfg.Cap, got)
	}
}

func TestConfidence_MonotonicInSourceCount(t *testing.T) {
	cfg := DefaultConfidenceConfig()
	now := time.Now()

	one := []domain.Scored{scoredSource(domain.TypeProject, 100, now, nil)}
	three := []domain.Scored{
		scoredSource(domain.TypeProject, 100, now, nil),
		scoredSource(domain.TypeProject, 100, now, nil),
		scoredSource(domain.TypeProject, 100, now, nil),
	}

	if cfg.confidence(one, 5, now) >= cfg.confidence(three, 5, now) {
		t.Error("more sources of equal quality should raise confidence")
	}
}

func TestConfidence_StaleSourcesScoreLower(t *testing.T) {
	cfg := DefaultConfidenceConfig()
	now := time.Now()

	fresh := []domain.Scored{scoredSource(domain.TypeProject, 300, now, nil)}
	stale := []domain.Scored{scoredSource(domain.TypeProject, 300, now.Add(-2*365*24*time.Hour), nil)}

	if cfg.confidence(stale, 5, now) >= cfg.confidence(fresh, 5, now) {
		t.Error("stale sources should score lower than fresh ones")
	}
}

func TestConfidence_RichMetadataRaisesScore(t *testing.T) {
	cfg := DefaultConfidenceConfig()
	now := time.Now()

	sparse := []domain.Scored{scoredSource(domain.TypeProject, 300, now, map[string]string{"a": "1"})}
	rich := []domain.Scored{scoredSource(domain.TypeProject, 300, now,
		map[string]string{"a": "1", "b": "2", "c": "3", "d": "4"})}

	if cfg.confidence(sparse, 5, now) >= cfg.confidence(rich, 5, now) {
		t.Error("rich metadata should raise confidence")
	}
}

func TestConfidence_DiversityRaisesScore(t *testing.T) {
	cfg := DefaultConfidenceConfig()
	now := time.Now()

	same := []domain.Scored{
		scoredSource(domain.TypeProject, 300, now, nil),
		scoredSource(domain.TypeProject, 300, now, nil),
	}
	mixed := []domain.Scored{
		scoredSource(domain.TypeProject, 300, now, nil),
		scoredSource(domain.TypeMaterial, 300, now, nil),
	}

	if cfg.confidence(same, 5, now) >= cfg.confidence(mixed, 5, now) {
		t.Error("type diversity should raise confidence")
	}
}
