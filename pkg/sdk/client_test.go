package sdk

import (
	"context"
	"testing"
)

func TestNew_RequiresDatabase(t *testing.T) {
	_, err := New(context.Background(),
		WithOpenAIEmbedding("key", "", "", 0),
		WithOpenAIGeneration("key", "", "", 0),
		WithSourceFile("export.yaml"),
	)
	if err == nil {
		t.Fatal("expected error without WithDatabase")
	}
}

func TestNew_RequiresEmbedder(t *testing.T) {
	_, err := New(context.Background(),
		WithDatabase("localhost:6379"),
		WithOpenAIGeneration("key", "", "", 0),
		WithSourceFile("export.yaml"),
	)
	if err == nil {
		t.Fatal("expected error without an embedder")
	}
}

func TestNew_RequiresGenerator(t *testing.T) {
	_, err := New(context.Background(),
		WithDatabase("localhost:6379"),
		WithOpenAIEmbedding("key", "", "", 0),
		WithSourceFile("export.yaml"),
	)
	if err == nil {
		t.Fatal("expected error without a generator")
	}
}

func TestNew_RequiresDataSource(t *testing.T) {
	_, err := New(context.Background(),
		WithDatabase("localhost:6379"),
		WithOpenAIEmbedding("key", "", "", 0),
		WithOpenAIGeneration("key", "", "", 0),
	)
	if err == nil {
		t.Fatal("expected error without a data source")
	}
}
