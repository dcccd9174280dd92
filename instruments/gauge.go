package instruments

import (
	"time"

	"github.com/jonwraymond/flightdeck/snapshot"
	"github.com/jonwraymond/flightdeck/telemetry"
)

// Gauge tracks the last observed value. Only value-carrying updates touch
// it; occurrence-only updates report no change.
type Gauge struct {
	name       string
	value      float64
	set        bool
	observedAt time.Time
}

// NewGauge creates a gauge that renders under the given name.
func NewGauge(name string) *Gauge {
	return &Gauge{name: name}
}

// Get returns the current value and whether one has been observed.
func (g *Gauge) Get() (float64, bool) {
	return g.value, g.set
}

// Update stores the value of a value-carrying update.
func (g *Gauge) Update(with *telemetry.Update) int {
	if with.Kind != telemetry.ObservedSingleValue {
		return 0
	}
	g.value = with.Value
	g.set = true
	g.observedAt = with.Timestamp
	return 1
}

// PutSnapshot writes the last value under the gauge's name. A gauge that
// has never observed a value writes nothing.
func (g *Gauge) PutSnapshot(into *snapshot.Snapshot, descriptive bool) {
	if !g.set {
		return
	}
	into.PutNumber(g.name, g.value)
}

var _ telemetry.Instrument = (*Gauge)(nil)
