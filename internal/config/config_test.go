package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config", "test.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

const minimalConfig = `
http:
  port: 8080
database:
  addrs:
    - localhost:6379
`

func TestLoad_AppliesDefaults(t *testing.T) {
	writeConfig(t, minimalConfig)

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Database.Driver != "valkey" {
		t.Errorf("driver = %q, want valkey", cfg.Database.Driver)
	}
	if cfg.Storage.KeyPrefix != "assist:" {
		t.Errorf("key prefix = %q", cfg.Storage.KeyPrefix)
	}
	if cfg.RAG.ResultLimit != 5 {
		t.Errorf("result limit = %d, want 5", cfg.RAG.ResultLimit)
	}
	if cfg.RAG.ConfidenceCap != 0.95 {
		t.Errorf("confidence cap = %v, want 0.95", cfg.RAG.ConfidenceCap)
	}
	if cfg.Indexing.WindowHours != 24 {
		t.Errorf("window hours = %d, want 24", cfg.Indexing.WindowHours)
	}
	if cfg.Generation.MaxTokens != 1000 {
		t.Errorf("max tokens = %d, want 1000", cfg.Generation.MaxTokens)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_ASSIST_ADDR", "db.internal:6380")
	writeConfig(t, `
http:
  port: 8080
database:
  addrs:
    - ${TEST_ASSIST_ADDR}
storage:
  key_prefix: "${TEST_ASSIST_PREFIX:-fallback:}"
`)

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Addrs[0] != "db.internal:6380" {
		t.Errorf("addr = %q", cfg.Database.Addrs[0])
	}
	if cfg.Storage.KeyPrefix != "fallback:" {
		t.Errorf("key prefix = %q, want default expansion", cfg.Storage.KeyPrefix)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	writeConfig(t, `
http:
  port: 0
database:
  addrs:
    - localhost:6379
`)
	if _, err := Load("test"); err == nil {
		t.Fatal("expected validation error for port 0")
	}
}

func TestLoad_MissingDatabaseAddrs(t *testing.T) {
	writeConfig(t, `
http:
  port: 8080
`)
	if _, err := Load("test"); err == nil {
		t.Fatal("expected validation error for missing addrs")
	}
}

func TestLoad_ConfidenceCapAboveOne(t *testing.T) {
	writeConfig(t, `
http:
  port: 8080
database:
  addrs:
    - localhost:6379
rag:
  confidence_cap: 1.5
`)
	if _, err := Load("test"); err == nil {
		t.Fatal("expected validation error for cap > 1")
	}
}

func TestGetEnv_DefaultsToLocal(t *testing.T) {
	t.Setenv("ENV", "")
	if env := GetEnv(); env != "local" {
		t.Errorf("env = %q, want local", env)
	}
	t.Setenv("ENV", "prod")
	if env := GetEnv(); env != "prod" {
		t.Errorf("env = %q, want prod", env)
	}
}
