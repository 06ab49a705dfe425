package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/semcache/cache"
	"github.com/jonwraymond/semcache/telemetry"
)

// Providers accepted by EmbeddingConfig.Provider.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

// Config is the full host configuration.
type Config struct {
	Cache     CacheConfig     `yaml:"cache"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Qdrant    *QdrantConfig   `yaml:"qdrant,omitempty"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// CacheConfig tunes the semantic cache.
type CacheConfig struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	MaxSize             int     `yaml:"max_size"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	Provider   string `yaml:"provider"` // openai|ollama|gemini
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	BaseURL    string `yaml:"base_url,omitempty"`
	APIKey     string `yaml:"api_key,omitempty"` // usually "${SOME_ENV_VAR}"
}

// QdrantConfig configures the optional remote vector index. When absent,
// the in-memory index is used.
type QdrantConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Collection string `yaml:"collection"`
}

// TelemetryConfig mirrors telemetry.Config with YAML tags.
type TelemetryConfig struct {
	ServiceName string `yaml:"service_name"`
	Version     string `yaml:"version,omitempty"`
	Tracing     struct {
		Enabled     bool    `yaml:"enabled"`
		Exporter    string  `yaml:"exporter,omitempty"`
		SampleRatio float64 `yaml:"sample_ratio,omitempty"`
	} `yaml:"tracing"`
	Metrics struct {
		Enabled  bool   `yaml:"enabled"`
		Exporter string `yaml:"exporter,omitempty"`
	} `yaml:"metrics"`
	Logging struct {
		Enabled bool   `yaml:"enabled"`
		Level   string `yaml:"level,omitempty"`
	} `yaml:"logging"`
}

// Default returns the default configuration.
func Default() Config {
	cfg := Config{}
	cfg.Cache.SimilarityThreshold = 0.95
	cfg.Cache.MaxSize = 1000
	cfg.Embedding.Provider = ProviderOpenAI
	cfg.Embedding.Model = "text-embedding-3-small"
	cfg.Embedding.Dimensions = 384
	cfg.Telemetry.ServiceName = "semcache"
	return cfg
}

// Load reads, env-expands, parses and validates the file at path.
// Fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse parses raw YAML bytes on top of the defaults.
func Parse(raw []byte) (*Config, error) {
	expanded, err := expandEnvStrict(string(raw))
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.CacheConfig().Validate(); err != nil {
		return err
	}

	switch c.Embedding.Provider {
	case ProviderOpenAI, ProviderOllama, ProviderGemini:
	default:
		return fmt.Errorf("config: unknown embedding provider: %q", c.Embedding.Provider)
	}
	if c.Embedding.Model == "" {
		return errors.New("config: embedding model is required")
	}
	if c.Embedding.Dimensions <= 0 {
		return errors.New("config: embedding dimensions must be positive")
	}

	if c.Qdrant != nil {
		if c.Qdrant.Host == "" {
			return errors.New("config: qdrant host is required")
		}
		if c.Qdrant.Port <= 0 {
			return errors.New("config: qdrant port must be positive")
		}
		if c.Qdrant.Collection == "" {
			return errors.New("config: qdrant collection is required")
		}
	}

	tc := c.TelemetryConfig()
	return tc.Validate()
}

// CacheConfig converts to the cache package's configuration type.
func (c *Config) CacheConfig() cache.Config {
	return cache.Config{
		SimilarityThreshold: c.Cache.SimilarityThreshold,
		MaxSize:             c.Cache.MaxSize,
	}
}

// TelemetryConfig converts to the telemetry package's configuration type.
func (c *Config) TelemetryConfig() telemetry.Config {
	return telemetry.Config{
		ServiceName: c.Telemetry.ServiceName,
		Version:     c.Telemetry.Version,
		Tracing: telemetry.TracingConfig{
			Enabled:     c.Telemetry.Tracing.Enabled,
			Exporter:    c.Telemetry.Tracing.Exporter,
			SampleRatio: c.Telemetry.Tracing.SampleRatio,
		},
		Metrics: telemetry.MetricsConfig{
			Enabled:  c.Telemetry.Metrics.Enabled,
			Exporter: c.Telemetry.Metrics.Exporter,
		},
		Logging: telemetry.LoggingConfig{
			Enabled: c.Telemetry.Logging.Enabled,
			Level:   c.Telemetry.Logging.Level,
		},
	}
}
