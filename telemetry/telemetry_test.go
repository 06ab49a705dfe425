package telemetry

import (
	"context"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "minimal valid",
			config:  Config{ServiceName: "svc"},
			wantErr: false,
		},
		{
			name:    "missing service name",
			config:  Config{},
			wantErr: true,
		},
		{
			name: "valid tracing",
			config: Config{
				ServiceName: "svc",
				Tracing:     TracingConfig{Enabled: true, Exporter: "stdout", SampleRatio: 0.5},
			},
			wantErr: false,
		},
		{
			name: "unknown tracing exporter",
			config: Config{
				ServiceName: "svc",
				Tracing:     TracingConfig{Enabled: true, Exporter: "zipkin"},
			},
			wantErr: true,
		},
		{
			name: "sample ratio out of range",
			config: Config{
				ServiceName: "svc",
				Tracing:     TracingConfig{Enabled: true, Exporter: "none", SampleRatio: 1.5},
			},
			wantErr: true,
		},
		{
			name: "unknown metrics exporter",
			config: Config{
				ServiceName: "svc",
				Metrics:     MetricsConfig{Enabled: true, Exporter: "statsd"},
			},
			wantErr: true,
		},
		{
			name: "unknown log level",
			config: Config{
				ServiceName: "svc",
				Logging:     LoggingConfig{Enabled: true, Level: "trace"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_DisabledSubsystemsAreNoop(t *testing.T) {
	ctx := context.Background()
	p, err := New(ctx, Config{ServiceName: "svc"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer func() { _ = p.Shutdown(ctx) }()

	if p.TracerProvider() == nil {
		t.Error("TracerProvider should not be nil when tracing is disabled")
	}
	if p.MeterProvider() == nil {
		t.Error("MeterProvider should not be nil when metrics are disabled")
	}
	if p.Logger() == nil {
		t.Error("Logger should not be nil when logging is disabled")
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(context.Background(), Config{})
	if err == nil {
		t.Fatal("expected error for empty config")
	}
}

func TestProvider_ShutdownIdempotent(t *testing.T) {
	ctx := context.Background()
	p, err := New(ctx, Config{
		ServiceName: "svc",
		Tracing:     TracingConfig{Enabled: true, Exporter: "none"},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "none"},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := p.Shutdown(ctx); err != nil {
		t.Fatalf("first Shutdown failed: %v", err)
	}
	if err := p.Shutdown(ctx); err != nil {
		t.Fatalf("second Shutdown failed: %v", err)
	}
}

func TestNewTraceExporter_UnknownName(t *testing.T) {
	if _, err := newTraceExporter(context.Background(), "bogus"); err == nil {
		t.Fatal("expected error for unknown exporter")
	}
}

func TestNewMetricReader_Prometheus(t *testing.T) {
	reader, err := newMetricReader(context.Background(), "prometheus")
	if err != nil {
		t.Fatalf("prometheus reader failed: %v", err)
	}
	if reader == nil {
		t.Fatal("expected non-nil reader")
	}
}
