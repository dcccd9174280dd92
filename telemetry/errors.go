package telemetry

import "errors"

// Lifecycle errors. The pipeline's hot paths never return errors; these
// surface only at the driver boundary.
var (
	// ErrDriverClosed indicates the driver has been shut down.
	ErrDriverClosed = errors.New("telemetry: driver is closed")
)
