package instruments

import (
	"github.com/jonwraymond/flightdeck/snapshot"
	"github.com/jonwraymond/flightdeck/telemetry"
)

// Counter counts occurrences monotonically.
type Counter struct {
	name  string
	count uint64
}

// NewCounter creates a counter that renders under the given name.
func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

// Get returns the current count.
func (c *Counter) Get() uint64 {
	return c.count
}

// Update counts every occurrence the update carries. A count-carrying
// update with count 0 is a no-op and reports no change.
func (c *Counter) Update(with *telemetry.Update) int {
	switch with.Kind {
	case telemetry.ObservedCount:
		if with.Count == 0 {
			return 0
		}
		c.count += with.Count
	case telemetry.ObservedSingle, telemetry.ObservedSingleValue:
		c.count++
	default:
		return 0
	}
	return 1
}

// PutSnapshot writes the count under the counter's name.
func (c *Counter) PutSnapshot(into *snapshot.Snapshot, descriptive bool) {
	into.PutInt(c.name, int64(c.count))
}

var _ telemetry.Instrument = (*Counter)(nil)
