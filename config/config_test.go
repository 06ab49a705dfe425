package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonwraymond/semcache/cache"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Cache.SimilarityThreshold != 0.95 {
		t.Errorf("threshold = %v, want 0.95", cfg.Cache.SimilarityThreshold)
	}
	if cfg.Cache.MaxSize != 1000 {
		t.Errorf("max size = %d, want 1000", cfg.Cache.MaxSize)
	}
	if cfg.Embedding.Provider != ProviderOpenAI {
		t.Errorf("provider = %q, want openai", cfg.Embedding.Provider)
	}
	if cfg.Qdrant != nil {
		t.Error("qdrant should default to nil")
	}
}

func TestParse_FullConfig(t *testing.T) {
	raw := `
cache:
  similarity_threshold: 0.9
  max_size: 500
embedding:
  provider: ollama
  model: nomic-embed-text
  dimensions: 768
qdrant:
  host: localhost
  port: 6334
  collection: responses
telemetry:
  service_name: my-gateway
  metrics:
    enabled: true
    exporter: prometheus
  logging:
    enabled: true
    level: debug
`
	cfg, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Cache.SimilarityThreshold != 0.9 || cfg.Cache.MaxSize != 500 {
		t.Errorf("cache config = %+v", cfg.Cache)
	}
	if cfg.Embedding.Provider != ProviderOllama || cfg.Embedding.Dimensions != 768 {
		t.Errorf("embedding config = %+v", cfg.Embedding)
	}
	if cfg.Qdrant == nil || cfg.Qdrant.Port != 6334 {
		t.Errorf("qdrant config = %+v", cfg.Qdrant)
	}
	if cfg.Telemetry.ServiceName != "my-gateway" {
		t.Errorf("service name = %q", cfg.Telemetry.ServiceName)
	}

	// Conversion to the cache package config validates.
	if err := cfg.CacheConfig().Validate(); err != nil {
		t.Errorf("CacheConfig().Validate() = %v", err)
	}
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_SEMCACHE_KEY", "sk-secret")

	cfg, err := Parse([]byte("embedding:\n  api_key: ${TEST_SEMCACHE_KEY}\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Embedding.APIKey != "sk-secret" {
		t.Errorf("api key = %q, want sk-secret", cfg.Embedding.APIKey)
	}
}

func TestParse_MissingEnvFails(t *testing.T) {
	os.Unsetenv("TEST_SEMCACHE_ABSENT")

	_, err := Parse([]byte("embedding:\n  api_key: ${TEST_SEMCACHE_ABSENT}\n"))
	if err == nil {
		t.Fatal("expected error for missing environment variable")
	}
	if !strings.Contains(err.Error(), "TEST_SEMCACHE_ABSENT") {
		t.Errorf("error should name the missing variable, got: %v", err)
	}
}

func TestParse_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"bad threshold", "cache:\n  similarity_threshold: 1.5\n"},
		{"bad max size", "cache:\n  max_size: -1\n"},
		{"unknown provider", "embedding:\n  provider: cohere\n"},
		{"zero dimensions", "embedding:\n  dimensions: 0\n"},
		{"qdrant without host", "qdrant:\n  port: 6334\n  collection: c\n"},
		{"bad log level", "telemetry:\n  logging:\n    enabled: true\n    level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.raw)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestParse_ThresholdErrorIsSentinel(t *testing.T) {
	_, err := Parse([]byte("cache:\n  similarity_threshold: 2\n"))
	if !errors.Is(err, cache.ErrInvalidThreshold) {
		t.Errorf("error = %v, want cache.ErrInvalidThreshold", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "semcache.yaml")
	if err := os.WriteFile(path, []byte("cache:\n  max_size: 42\n"), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Cache.MaxSize != 42 {
		t.Errorf("max size = %d, want 42", cfg.Cache.MaxSize)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
