package instruments

import (
	"testing"
	"time"

	"github.com/jonwraymond/flightdeck/snapshot"
	"github.com/jonwraymond/flightdeck/telemetry"
)

func TestGauge_OnlyValuesTouchIt(t *testing.T) {
	g := NewGauge("level")
	at := time.Now()

	occurrence := telemetry.Update{Kind: telemetry.ObservedSingle, Timestamp: at}
	if g.Update(&occurrence) != 0 {
		t.Fatal("occurrence-only update changed the gauge")
	}
	counted := telemetry.Update{Kind: telemetry.ObservedCount, Count: 5, Timestamp: at}
	if g.Update(&counted) != 0 {
		t.Fatal("count update changed the gauge")
	}
	if _, set := g.Get(); set {
		t.Fatal("gauge set without a value observation")
	}

	valued := telemetry.Update{Kind: telemetry.ObservedSingleValue, Value: 7.25, Timestamp: at}
	if g.Update(&valued) != 1 {
		t.Fatal("value update reported no change")
	}
	if v, set := g.Get(); !set || v != 7.25 {
		t.Fatalf("gauge = %v/%v, want 7.25/true", v, set)
	}
}

func TestGauge_KeepsLastValue(t *testing.T) {
	g := NewGauge("level")
	at := time.Now()
	for _, v := range []float64{1, -3.5, 100} {
		u := telemetry.Update{Kind: telemetry.ObservedSingleValue, Value: v, Timestamp: at}
		g.Update(&u)
	}
	if v, _ := g.Get(); v != 100 {
		t.Fatalf("gauge = %v, want the last value 100", v)
	}
}

func TestGauge_SnapshotOmittedUntilSet(t *testing.T) {
	g := NewGauge("level")

	empty := snapshot.New()
	g.PutSnapshot(empty, false)
	if empty.Len() != 0 {
		t.Fatal("unset gauge wrote into the snapshot")
	}

	u := telemetry.Update{Kind: telemetry.ObservedSingleValue, Value: 0.5, Timestamp: time.Now()}
	g.Update(&u)
	snap := snapshot.New()
	g.PutSnapshot(snap, false)
	if v, ok := snap.Find("level"); !ok || v != snapshot.Number(0.5) {
		t.Fatalf("snapshot value = %v, want 0.5", v)
	}
}
