package telemetry

import (
	"time"

	"github.com/jonwraymond/flightdeck/snapshot"
)

// Panel shows observations with the same label in different representations.
//
// A panel owns at most one instrument of each well-known kind — counter,
// gauge, meter, histogram — plus arbitrary child panels and handlers. To
// monitor the successful requests of an endpoint you would create one panel
// filtering on that label and add a counter for volume, a meter for rate and
// a histogram for latencies.
//
// A named panel nests its values under the name in snapshots; an unnamed
// panel writes into its parent's level directly.
type Panel[L comparable] struct {
	name          string
	title         string
	description   string
	filter        LabelFilter[L]
	counter       Instrument
	gauge         Instrument
	meter         Instrument
	histogram     Instrument
	panels        []*Panel[L]
	handlers      []Handler[L]
	snapshotters  []Snapshotter
	lastUpdate    time.Time
	maxInactivity time.Duration
}

// NewPanel creates an unnamed panel dispatching observations the filter
// accepts.
func NewPanel[L comparable](filter LabelFilter[L]) *Panel[L] {
	return &Panel[L]{filter: filter, lastUpdate: time.Now()}
}

// NamedPanel creates a panel with the given name dispatching observations
// the filter accepts.
func NamedPanel[L comparable](filter LabelFilter[L], name string) *Panel[L] {
	p := NewPanel(filter)
	p.name = name
	return p
}

// Name returns the name of the panel; empty means unnamed.
func (p *Panel[L]) Name() string {
	return p.name
}

// SetName sets the name. The name becomes a path segment within a snapshot.
func (p *Panel[L]) SetName(name string) {
	p.name = name
}

// SetTitle sets the title emitted in descriptive snapshots.
func (p *Panel[L]) SetTitle(title string) {
	p.title = title
}

// SetDescription sets the description emitted in descriptive snapshots.
func (p *Panel[L]) SetDescription(description string) {
	p.description = description
}

// SetInactivityLimit sets the maximum time the panel may be without updates
// before snapshots show it as inactive and omit its values.
// Default is no inactivity tracking.
func (p *Panel[L]) SetInactivityLimit(limit time.Duration) {
	p.maxInactivity = limit
}

// WithTitle sets the title and returns the panel.
func (p *Panel[L]) WithTitle(title string) *Panel[L] {
	p.SetTitle(title)
	return p
}

// WithDescription sets the description and returns the panel.
func (p *Panel[L]) WithDescription(description string) *Panel[L] {
	p.SetDescription(description)
	return p
}

// WithInactivityLimit sets the inactivity limit and returns the panel.
func (p *Panel[L]) WithInactivityLimit(limit time.Duration) *Panel[L] {
	p.SetInactivityLimit(limit)
	return p
}

// AddCounter fills the counter slot. If the slot is already taken the
// instrument is added as a generic handler instead, so no observation
// capability is silently lost.
func (p *Panel[L]) AddCounter(counter Instrument) {
	if p.counter == nil {
		p.counter = counter
		return
	}
	p.AddInstrument(counter)
}

// WithCounter fills the counter slot and returns the panel.
func (p *Panel[L]) WithCounter(counter Instrument) *Panel[L] {
	p.AddCounter(counter)
	return p
}

// AddGauge fills the gauge slot, demoting to a generic handler when taken.
func (p *Panel[L]) AddGauge(gauge Instrument) {
	if p.gauge == nil {
		p.gauge = gauge
		return
	}
	p.AddInstrument(gauge)
}

// WithGauge fills the gauge slot and returns the panel.
func (p *Panel[L]) WithGauge(gauge Instrument) *Panel[L] {
	p.AddGauge(gauge)
	return p
}

// AddMeter fills the meter slot, demoting to a generic handler when taken.
func (p *Panel[L]) AddMeter(meter Instrument) {
	if p.meter == nil {
		p.meter = meter
		return
	}
	p.AddInstrument(meter)
}

// WithMeter fills the meter slot and returns the panel.
func (p *Panel[L]) WithMeter(meter Instrument) *Panel[L] {
	p.AddMeter(meter)
	return p
}

// AddHistogram fills the histogram slot, demoting to a generic handler when
// taken.
func (p *Panel[L]) AddHistogram(histogram Instrument) {
	if p.histogram == nil {
		p.histogram = histogram
		return
	}
	p.AddInstrument(histogram)
}

// WithHistogram fills the histogram slot and returns the panel.
func (p *Panel[L]) WithHistogram(histogram Instrument) *Panel[L] {
	p.AddHistogram(histogram)
	return p
}

// AddInstrument adds an instrument outside the well-known slots as a
// generic handler accepting all labels this panel accepts.
func (p *Panel[L]) AddInstrument(instrument Instrument) {
	p.AddHandler(NewInstrumentAdapter[L](instrument))
}

// WithInstrument adds an instrument as a generic handler and returns the
// panel.
func (p *Panel[L]) WithInstrument(instrument Instrument) *Panel[L] {
	p.AddInstrument(instrument)
	return p
}

// AddPanel adds a child panel.
func (p *Panel[L]) AddPanel(child *Panel[L]) {
	p.panels = append(p.panels, child)
}

// WithPanel adds a child panel and returns the panel.
func (p *Panel[L]) WithPanel(child *Panel[L]) *Panel[L] {
	p.AddPanel(child)
	return p
}

// AddHandler adds a generic observation handler.
func (p *Panel[L]) AddHandler(handler Handler[L]) {
	p.handlers = append(p.handlers, handler)
}

// WithHandler adds a generic observation handler and returns the panel.
func (p *Panel[L]) WithHandler(handler Handler[L]) *Panel[L] {
	p.AddHandler(handler)
	return p
}

// AddSnapshotter adds a contributor that writes polled values into
// snapshots without being driven by observations.
func (p *Panel[L]) AddSnapshotter(s Snapshotter) {
	p.snapshotters = append(p.snapshotters, s)
}

// WithSnapshotter adds a snapshotter and returns the panel.
func (p *Panel[L]) WithSnapshotter(s Snapshotter) *Panel[L] {
	p.AddSnapshotter(s)
	return p
}

// AcceptsLabel reports whether observations with the label are dispatched.
func (p *Panel[L]) AcceptsLabel(label L) bool {
	return p.filter.Accepts(label)
}

// HandleObservation dispatches the observation to the instrument slots, the
// child panels and the generic handlers, in that order, and returns the
// total number of instruments updated. Observations whose label the filter
// rejects return 0 without traversing children.
func (p *Panel[L]) HandleObservation(obs *Observation[L]) int {
	if !p.filter.Accepts(obs.Label) {
		return 0
	}

	update := obs.Project()
	updated := 0
	if p.counter != nil {
		updated += p.counter.Update(&update)
	}
	if p.gauge != nil {
		updated += p.gauge.Update(&update)
	}
	if p.meter != nil {
		updated += p.meter.Update(&update)
	}
	if p.histogram != nil {
		updated += p.histogram.Update(&update)
	}
	for _, child := range p.panels {
		updated += child.HandleObservation(obs)
	}
	for _, handler := range p.handlers {
		updated += handler.HandleObservation(obs)
	}

	p.lastUpdate = time.Now()
	return updated
}

// PutSnapshot writes the panel's state into the snapshot, nested under the
// panel's name when set. A panel whose inactivity limit is exceeded emits
// only its liveness flags.
func (p *Panel[L]) PutSnapshot(into *snapshot.Snapshot, descriptive bool) {
	putNamed(into, p.name, descriptive, p.putValues)
}

func (p *Panel[L]) putValues(into *snapshot.Snapshot, descriptive bool) {
	putDescriptives(into, descriptive, p.title, p.description)
	if !putActivity(into, p.lastUpdate, p.maxInactivity) {
		return
	}
	if p.counter != nil {
		p.counter.PutSnapshot(into, descriptive)
	}
	if p.gauge != nil {
		p.gauge.PutSnapshot(into, descriptive)
	}
	if p.meter != nil {
		p.meter.PutSnapshot(into, descriptive)
	}
	if p.histogram != nil {
		p.histogram.PutSnapshot(into, descriptive)
	}
	for _, child := range p.panels {
		child.PutSnapshot(into, descriptive)
	}
	for _, s := range p.snapshotters {
		s.PutSnapshot(into, descriptive)
	}
	for _, handler := range p.handlers {
		handler.PutSnapshot(into, descriptive)
	}
}
