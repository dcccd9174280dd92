package otelbridge

import (
	"context"
	"errors"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/jonwraymond/flightdeck/snapshot"
	"github.com/jonwraymond/flightdeck/telemetry"
)

func newTestBridge(t *testing.T) (*Bridge[string], *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := mp.Meter("test")

	b, err := NewBridge(meter, "pipeline", func(label string) string { return label })
	if err != nil {
		t.Fatalf("failed to create bridge: %v", err)
	}
	return b, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestBridge_NilMeter(t *testing.T) {
	_, err := NewBridge[string](nil, "pipeline", func(label string) string { return label })
	if !errors.Is(err, ErrNilMeter) {
		t.Fatalf("expected ErrNilMeter, got %v", err)
	}
}

func TestBridge_CountsForwardToCounter(t *testing.T) {
	b, reader := newTestBridge(t)

	obs := telemetry.Observed("requests", 7, time.Now())
	if got := b.HandleObservation(&obs); got != 1 {
		t.Fatalf("HandleObservation = %d, want 1", got)
	}

	rm := collect(t, reader)
	found := findMetric(rm, "pipeline.occurrences")
	if found == nil {
		t.Fatal("pipeline.occurrences metric not found")
	}
	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", found.Data)
	}
	if len(sum.DataPoints) == 0 {
		t.Fatal("no data points")
	}
	if sum.DataPoints[0].Value != 7 {
		t.Errorf("expected count 7, got %d", sum.DataPoints[0].Value)
	}
}

func TestBridge_ZeroCountRecordsNothing(t *testing.T) {
	b, reader := newTestBridge(t)

	obs := telemetry.Observed("requests", 0, time.Now())
	if got := b.HandleObservation(&obs); got != 0 {
		t.Fatalf("HandleObservation = %d, want 0", got)
	}

	rm := collect(t, reader)
	found := findMetric(rm, "pipeline.occurrences")
	if found == nil {
		return // Never written at all, also fine
	}
	sum, ok := found.Data.(metricdata.Sum[int64])
	if ok && len(sum.DataPoints) > 0 && sum.DataPoints[0].Value != 0 {
		t.Errorf("expected count 0, got %d", sum.DataPoints[0].Value)
	}
}

func TestBridge_ValuesForwardToHistogram(t *testing.T) {
	b, reader := newTestBridge(t)

	obs := telemetry.ObservedOneValue("latency", 12.5, time.Now())
	if got := b.HandleObservation(&obs); got != 1 {
		t.Fatalf("HandleObservation = %d, want 1", got)
	}

	rm := collect(t, reader)
	found := findMetric(rm, "pipeline.value")
	if found == nil {
		t.Fatal("pipeline.value metric not found")
	}
	hist, ok := found.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("expected Histogram[float64], got %T", found.Data)
	}
	if len(hist.DataPoints) == 0 {
		t.Fatal("no data points")
	}
	dp := hist.DataPoints[0]
	if dp.Count != 1 || dp.Sum != 12.5 {
		t.Errorf("histogram count/sum = %d/%v, want 1/12.5", dp.Count, dp.Sum)
	}

	// A value observation is also one occurrence.
	occ := findMetric(rm, "pipeline.occurrences")
	if occ == nil {
		t.Fatal("pipeline.occurrences metric not found")
	}
	sum := occ.Data.(metricdata.Sum[int64])
	if sum.DataPoints[0].Value != 1 {
		t.Errorf("occurrences = %d, want 1", sum.DataPoints[0].Value)
	}
}

func TestBridge_AsPipelineHandler(t *testing.T) {
	b, reader := newTestBridge(t)

	tx, rx := telemetry.NewUnnamedPair[string]()
	defer rx.Close()
	rx.AddHandler(b)

	tx.ObservedOne("a")
	tx.Observed("b", 3)
	rx.Process(100, telemetry.ProcessAll())

	rm := collect(t, reader)
	found := findMetric(rm, "pipeline.occurrences")
	if found == nil {
		t.Fatal("pipeline.occurrences metric not found")
	}
	sum := found.Data.(metricdata.Sum[int64])
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	if total != 4 {
		t.Errorf("total occurrences = %d, want 4", total)
	}

	snap := snapshot.New()
	b.PutSnapshot(snap, false)
	if v, _ := snap.Find("forwarded"); v != snapshot.Int(2) {
		t.Errorf("forwarded = %v, want 2", v)
	}
}
