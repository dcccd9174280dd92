package instruments

import (
	"math/rand"
	"slices"

	"github.com/jonwraymond/flightdeck/snapshot"
	"github.com/jonwraymond/flightdeck/telemetry"
)

const reservoirSize = 1024

// Histogram tracks the distribution of observed values with exact
// count/min/max/mean and quantiles estimated from a bounded reservoir
// sample, so memory stays constant regardless of observation volume.
type Histogram struct {
	name   string
	count  uint64
	sum    float64
	min    float64
	max    float64
	sample []float64
}

// NewHistogram creates a histogram that renders under the given name.
func NewHistogram(name string) *Histogram {
	return &Histogram{name: name, sample: make([]float64, 0, reservoirSize)}
}

// Count returns the number of values observed.
func (h *Histogram) Count() uint64 {
	return h.count
}

// Update records the value of a value-carrying update.
func (h *Histogram) Update(with *telemetry.Update) int {
	if with.Kind != telemetry.ObservedSingleValue {
		return 0
	}
	h.record(with.Value)
	return 1
}

func (h *Histogram) record(value float64) {
	h.count++
	h.sum += value
	if h.count == 1 {
		h.min = value
		h.max = value
	} else {
		if value < h.min {
			h.min = value
		}
		if value > h.max {
			h.max = value
		}
	}

	// Vitter's algorithm R keeps a uniform sample of everything seen.
	if len(h.sample) < reservoirSize {
		h.sample = append(h.sample, value)
		return
	}
	if idx := uint64(rand.Int63n(int64(h.count))); idx < reservoirSize {
		h.sample[idx] = value
	}
}

// Quantile estimates the q-quantile (0..1) from the reservoir sample.
// It reports false when no values have been observed.
func (h *Histogram) Quantile(q float64) (float64, bool) {
	if len(h.sample) == 0 {
		return 0, false
	}
	sorted := slices.Clone(h.sample)
	slices.Sort(sorted)

	if q <= 0 {
		return sorted[0], true
	}
	if q >= 1 {
		return sorted[len(sorted)-1], true
	}
	pos := q * float64(len(sorted)-1)
	lower := int(pos)
	frac := pos - float64(lower)
	if lower+1 >= len(sorted) {
		return sorted[lower], true
	}
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower]), true
}

// PutSnapshot writes a nested snapshot with count, min, max, mean and the
// p50/p95/p99 estimates under the histogram's name.
func (h *Histogram) PutSnapshot(into *snapshot.Snapshot, descriptive bool) {
	nested := snapshot.New()
	nested.PutInt("count", int64(h.count))
	if h.count > 0 {
		nested.PutNumber("min", h.min)
		nested.PutNumber("max", h.max)
		nested.PutNumber("mean", h.sum/float64(h.count))
		if p50, ok := h.Quantile(0.50); ok {
			nested.PutNumber("p50", p50)
		}
		if p95, ok := h.Quantile(0.95); ok {
			nested.PutNumber("p95", p95)
		}
		if p99, ok := h.Quantile(0.99); ok {
			nested.PutNumber("p99", p99)
		}
	}
	into.PutNested(h.name, nested)
}

var _ telemetry.Instrument = (*Histogram)(nil)
