package telemetry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Config holds all configuration for telemetry setup.
type Config struct {
	ServiceName string
	Version     string
	Tracing     TracingConfig
	Metrics     MetricsConfig
	Logging     LoggingConfig
}

// TracingConfig configures the tracing subsystem.
type TracingConfig struct {
	Enabled     bool
	Exporter    string  // stdout|otlp|none
	SampleRatio float64 // 0.0-1.0; 0 means always sample
}

// MetricsConfig configures the metrics subsystem.
type MetricsConfig struct {
	Enabled  bool
	Exporter string // stdout|otlp|prometheus|none
}

// LoggingConfig configures the logging subsystem.
type LoggingConfig struct {
	Enabled bool
	Level   string // debug|info|warn|error
}

var validTraceExporters = map[string]bool{
	"stdout": true,
	"otlp":   true,
	"none":   true,
	"":       true,
}

var validMetricExporters = map[string]bool{
	"stdout":     true,
	"otlp":       true,
	"prometheus": true,
	"none":       true,
	"":           true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"":      true,
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return errors.New("telemetry: service name is required")
	}
	if c.Tracing.Enabled {
		if !validTraceExporters[c.Tracing.Exporter] {
			return fmt.Errorf("telemetry: unknown tracing exporter: %q", c.Tracing.Exporter)
		}
		if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1.0 {
			return fmt.Errorf("telemetry: sample ratio must be between 0.0 and 1.0, got: %f", c.Tracing.SampleRatio)
		}
	}
	if c.Metrics.Enabled && !validMetricExporters[c.Metrics.Exporter] {
		return fmt.Errorf("telemetry: unknown metrics exporter: %q", c.Metrics.Exporter)
	}
	if c.Logging.Enabled && !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("telemetry: unknown log level: %q", c.Logging.Level)
	}
	return nil
}

// Provider owns the configured telemetry primitives.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Shutdown: idempotent; returns the first error encountered.
type Provider struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	logger         Logger

	sdkTracer *sdktrace.TracerProvider
	sdkMeter  *sdkmetric.MeterProvider

	shutdownOnce sync.Once
	shutdownErr  error
}

// New builds a Provider from the configuration. Disabled subsystems get
// no-op implementations, so callers never need nil checks.
func New(ctx context.Context, cfg Config) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: failed to create resource: %w", err)
	}

	p := &Provider{
		tracerProvider: tracenoop.NewTracerProvider(),
		meterProvider:  metricnoop.NewMeterProvider(),
		logger:         NopLogger(),
	}

	if cfg.Tracing.Enabled {
		exp, err := newTraceExporter(ctx, cfg.Tracing.Exporter)
		if err != nil {
			return nil, err
		}
		sampler := sdktrace.AlwaysSample()
		if cfg.Tracing.SampleRatio > 0 && cfg.Tracing.SampleRatio < 1.0 {
			sampler = sdktrace.TraceIDRatioBased(cfg.Tracing.SampleRatio)
		}
		p.sdkTracer = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sampler),
		)
		p.tracerProvider = p.sdkTracer
	}

	if cfg.Metrics.Enabled {
		reader, err := newMetricReader(ctx, cfg.Metrics.Exporter)
		if err != nil {
			return nil, err
		}
		p.sdkMeter = sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(reader),
			sdkmetric.WithResource(res),
		)
		p.meterProvider = p.sdkMeter
	}

	if cfg.Logging.Enabled {
		p.logger = NewLogger(cfg.Logging.Level)
	}

	return p, nil
}

// TracerProvider returns the configured tracer provider.
func (p *Provider) TracerProvider() trace.TracerProvider {
	return p.tracerProvider
}

// MeterProvider returns the configured meter provider.
func (p *Provider) MeterProvider() metric.MeterProvider {
	return p.meterProvider
}

// Logger returns the configured logger.
func (p *Provider) Logger() Logger {
	return p.logger
}

// Shutdown flushes and stops all telemetry providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	p.shutdownOnce.Do(func() {
		if p.sdkTracer != nil {
			if err := p.sdkTracer.Shutdown(ctx); err != nil && p.shutdownErr == nil {
				p.shutdownErr = err
			}
		}
		if p.sdkMeter != nil {
			if err := p.sdkMeter.Shutdown(ctx); err != nil && p.shutdownErr == nil {
				p.shutdownErr = err
			}
		}
	})
	return p.shutdownErr
}
