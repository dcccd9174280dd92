package otelbridge

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jonwraymond/flightdeck/snapshot"
	"github.com/jonwraymond/flightdeck/telemetry"
)

// Bridge mirrors observations into OpenTelemetry instruments: occurrences
// into an Int64Counter and measured values into a Float64Histogram, with
// the label rendered as an attribute.
//
// Contract:
// - Concurrency: driven by a single processor like every handler; the OTel
//   instruments it writes to are safe for concurrent use regardless.
// - Errors: HandleObservation must not fail; recording is best-effort.
type Bridge[L comparable] struct {
	occurrences metric.Int64Counter
	values      metric.Float64Histogram
	labelText   func(L) string
	forwarded   uint64
}

// NewBridge creates a bridge recording under "<prefix>.occurrences" and
// "<prefix>.value". labelText renders a label as the "label" attribute.
func NewBridge[L comparable](meter metric.Meter, prefix string, labelText func(L) string) (*Bridge[L], error) {
	if meter == nil {
		return nil, ErrNilMeter
	}

	occurrences, err := meter.Int64Counter(
		prefix+".occurrences",
		metric.WithDescription("Occurrences forwarded from the telemetry pipeline"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	values, err := meter.Float64Histogram(
		prefix+".value",
		metric.WithDescription("Measured values forwarded from the telemetry pipeline"),
	)
	if err != nil {
		return nil, err
	}

	return &Bridge[L]{occurrences: occurrences, values: values, labelText: labelText}, nil
}

// AcceptsLabel reports true: the bridge forwards every label it is handed.
func (b *Bridge[L]) AcceptsLabel(label L) bool {
	return true
}

// HandleObservation records the observation into the OTel instruments.
func (b *Bridge[L]) HandleObservation(obs *telemetry.Observation[L]) int {
	update := obs.Project()
	opt := metric.WithAttributes(attribute.String("label", b.labelText(obs.Label)))
	ctx := context.Background()

	switch update.Kind {
	case telemetry.ObservedCount:
		if update.Count == 0 {
			return 0
		}
		b.occurrences.Add(ctx, int64(update.Count), opt)
	case telemetry.ObservedSingle:
		b.occurrences.Add(ctx, 1, opt)
	case telemetry.ObservedSingleValue:
		b.occurrences.Add(ctx, 1, opt)
		b.values.Record(ctx, update.Value, opt)
	default:
		return 0
	}

	b.forwarded++
	return 1
}

// PutSnapshot writes the number of observations forwarded so far. The
// mirrored values themselves live on the OTel side.
func (b *Bridge[L]) PutSnapshot(into *snapshot.Snapshot, descriptive bool) {
	into.PutInt("forwarded", int64(b.forwarded))
}

var _ telemetry.Handler[string] = (*Bridge[string])(nil)
