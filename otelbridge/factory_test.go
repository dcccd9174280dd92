package otelbridge

import (
	"context"
	"errors"
	"testing"
)

func TestNewReader_None(t *testing.T) {
	reader, err := NewReader(context.Background(), "none")
	if err != nil {
		t.Fatalf("NewReader(none): %v", err)
	}
	if reader == nil {
		t.Fatal("expected a non-nil reader")
	}
}

func TestNewReader_Empty(t *testing.T) {
	reader, err := NewReader(context.Background(), "")
	if err != nil {
		t.Fatalf("NewReader(\"\"): %v", err)
	}
	if reader == nil {
		t.Fatal("expected a non-nil reader")
	}
}

func TestNewReader_InvalidName(t *testing.T) {
	_, err := NewReader(context.Background(), "bogus")
	if !errors.Is(err, ErrInvalidExporter) {
		t.Fatalf("expected ErrInvalidExporter, got %v", err)
	}
}

func TestNewReader_OTLPRequiresEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "")

	_, err := NewReader(context.Background(), "otlp")
	if !errors.Is(err, ErrEndpointNotConfigured) {
		t.Fatalf("expected ErrEndpointNotConfigured, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"valid none", Config{ServiceName: "svc", Exporter: "none"}, nil},
		{"valid empty exporter", Config{ServiceName: "svc"}, nil},
		{"valid prometheus", Config{ServiceName: "svc", Exporter: "prometheus"}, nil},
		{"missing service name", Config{Exporter: "none"}, ErrMissingServiceName},
		{"unknown exporter", Config{ServiceName: "svc", Exporter: "jaeger"}, ErrInvalidExporter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewMeterProvider_None(t *testing.T) {
	ctx := context.Background()
	mp, err := NewMeterProvider(ctx, Config{ServiceName: "flightdeck-test", Exporter: "none"})
	if err != nil {
		t.Fatalf("NewMeterProvider: %v", err)
	}
	defer func() {
		_ = mp.Shutdown(ctx)
	}()
	if mp.Meter("test") == nil {
		t.Fatal("expected a usable meter")
	}
}

func TestNewMeterProvider_RejectsInvalidConfig(t *testing.T) {
	_, err := NewMeterProvider(context.Background(), Config{})
	if !errors.Is(err, ErrMissingServiceName) {
		t.Fatalf("expected ErrMissingServiceName, got %v", err)
	}
}
