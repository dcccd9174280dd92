package instruments

import (
	"time"

	"github.com/jonwraymond/flightdeck/snapshot"
	"github.com/jonwraymond/flightdeck/telemetry"
)

const meterWindowSeconds = 60

// Meter tracks occurrence throughput: a total count and the per-second rate
// over the trailing minute, kept in a ring of one-second buckets.
type Meter struct {
	name       string
	total      uint64
	buckets    [meterWindowSeconds]uint64
	cursor     int
	lastSecond int64
}

// NewMeter creates a meter that renders under the given name.
func NewMeter(name string) *Meter {
	return &Meter{name: name}
}

// Total returns the total number of occurrences observed.
func (m *Meter) Total() uint64 {
	return m.total
}

// Update counts the occurrences the update carries into the current second.
func (m *Meter) Update(with *telemetry.Update) int {
	var n uint64
	switch with.Kind {
	case telemetry.ObservedCount:
		if with.Count == 0 {
			return 0
		}
		n = with.Count
	case telemetry.ObservedSingle, telemetry.ObservedSingleValue:
		n = 1
	default:
		return 0
	}

	m.advance(time.Now())
	m.buckets[m.cursor] += n
	m.total += n
	return 1
}

// advance rotates the ring forward to now, zeroing the seconds passed over.
func (m *Meter) advance(now time.Time) {
	second := now.Unix()
	if m.lastSecond == 0 {
		m.lastSecond = second
		return
	}
	elapsed := second - m.lastSecond
	if elapsed <= 0 {
		return
	}
	if elapsed >= meterWindowSeconds {
		m.buckets = [meterWindowSeconds]uint64{}
		m.cursor = 0
	} else {
		for i := int64(0); i < elapsed; i++ {
			m.cursor = (m.cursor + 1) % meterWindowSeconds
			m.buckets[m.cursor] = 0
		}
	}
	m.lastSecond = second
}

// RatePerSecond returns the occurrence rate over the trailing minute.
func (m *Meter) RatePerSecond() float64 {
	m.advance(time.Now())
	var sum uint64
	for _, b := range m.buckets {
		sum += b
	}
	return float64(sum) / meterWindowSeconds
}

// PutSnapshot writes a nested snapshot with the total count and the
// per-second rate under the meter's name.
func (m *Meter) PutSnapshot(into *snapshot.Snapshot, descriptive bool) {
	nested := snapshot.New()
	nested.PutInt("count", int64(m.total))
	nested.PutNumber("per_second", m.RatePerSecond())
	into.PutNested(m.name, nested)
}

var _ telemetry.Instrument = (*Meter)(nil)
