package otelbridge

import "errors"

// Configuration errors.
var (
	// ErrMissingServiceName indicates Config.ServiceName is empty.
	ErrMissingServiceName = errors.New("otelbridge: service name is required")

	// ErrInvalidExporter indicates an unknown metrics exporter name.
	ErrInvalidExporter = errors.New("otelbridge: invalid metrics exporter")

	// ErrEndpointNotConfigured indicates a required endpoint environment
	// variable is not set.
	ErrEndpointNotConfigured = errors.New("otelbridge: endpoint not configured")

	// ErrNilMeter indicates a nil meter was provided.
	ErrNilMeter = errors.New("otelbridge: meter is nil")
)

// ValidExporters lists valid metrics exporter names.
var ValidExporters = []string{"otlp", "prometheus", "stdout", "none", ""}
