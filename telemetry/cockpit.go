package telemetry

import (
	"time"

	"github.com/jonwraymond/flightdeck/snapshot"
)

// Cockpit is a named grouping of panels around one concern, for example all
// the panels instrumenting one connector. Processors address cockpits by
// name, which makes them the attachment point for panels added dynamically
// through a Transmitter.
//
// A cockpit dispatches every accepted observation to all of its panels and
// handlers; each of those applies its own label filter. The cockpit's own
// filter defaults to accept-all and exists to bound dispatch cost for
// subtrees that can never match.
type Cockpit[L comparable] struct {
	name          string
	title         string
	description   string
	filter        LabelFilter[L]
	panels        []*Panel[L]
	handlers      []Handler[L]
	snapshotters  []Snapshotter
	lastUpdate    time.Time
	maxInactivity time.Duration
}

// NewCockpit creates an unnamed cockpit accepting all labels. An unnamed
// cockpit cannot be targeted by dynamic panel attachment.
func NewCockpit[L comparable]() *Cockpit[L] {
	return &Cockpit[L]{filter: AcceptAllLabels[L](), lastUpdate: time.Now()}
}

// NamedCockpit creates a cockpit with the given name accepting all labels.
// The name causes a grouping in the snapshot.
func NamedCockpit[L comparable](name string) *Cockpit[L] {
	c := NewCockpit[L]()
	c.name = name
	return c
}

// Name returns the name of the cockpit; empty means unnamed.
func (c *Cockpit[L]) Name() string {
	return c.name
}

// SetName sets the name. The name becomes a path segment within a snapshot.
func (c *Cockpit[L]) SetName(name string) {
	c.name = name
}

// SetTitle sets the title emitted in descriptive snapshots.
func (c *Cockpit[L]) SetTitle(title string) {
	c.title = title
}

// SetDescription sets the description emitted in descriptive snapshots.
func (c *Cockpit[L]) SetDescription(description string) {
	c.description = description
}

// SetLabelFilter replaces the cockpit's filter.
func (c *Cockpit[L]) SetLabelFilter(filter LabelFilter[L]) {
	c.filter = filter
}

// SetInactivityLimit sets the maximum time the cockpit may be without
// updates before snapshots show it as inactive and omit its values.
func (c *Cockpit[L]) SetInactivityLimit(limit time.Duration) {
	c.maxInactivity = limit
}

// WithInactivityLimit sets the inactivity limit and returns the cockpit.
func (c *Cockpit[L]) WithInactivityLimit(limit time.Duration) *Cockpit[L] {
	c.SetInactivityLimit(limit)
	return c
}

// AddPanel adds a panel.
func (c *Cockpit[L]) AddPanel(panel *Panel[L]) {
	c.panels = append(c.panels, panel)
}

// WithPanel adds a panel and returns the cockpit.
func (c *Cockpit[L]) WithPanel(panel *Panel[L]) *Cockpit[L] {
	c.AddPanel(panel)
	return c
}

// Panels returns the owned panels in insertion order.
func (c *Cockpit[L]) Panels() []*Panel[L] {
	return c.panels
}

// AddHandler adds a generic observation handler.
func (c *Cockpit[L]) AddHandler(handler Handler[L]) {
	c.handlers = append(c.handlers, handler)
}

// WithHandler adds a generic observation handler and returns the cockpit.
func (c *Cockpit[L]) WithHandler(handler Handler[L]) *Cockpit[L] {
	c.AddHandler(handler)
	return c
}

// AddSnapshotter adds a polled snapshot contributor.
func (c *Cockpit[L]) AddSnapshotter(s Snapshotter) {
	c.snapshotters = append(c.snapshotters, s)
}

// WithSnapshotter adds a snapshotter and returns the cockpit.
func (c *Cockpit[L]) WithSnapshotter(s Snapshotter) *Cockpit[L] {
	c.AddSnapshotter(s)
	return c
}

// AcceptsLabel reports whether observations with the label are dispatched.
func (c *Cockpit[L]) AcceptsLabel(label L) bool {
	return c.filter.Accepts(label)
}

// HandleObservation dispatches the observation to every panel and handler
// and returns the total number of instruments updated.
func (c *Cockpit[L]) HandleObservation(obs *Observation[L]) int {
	if !c.filter.Accepts(obs.Label) {
		return 0
	}

	updated := 0
	for _, panel := range c.panels {
		updated += panel.HandleObservation(obs)
	}
	for _, handler := range c.handlers {
		updated += handler.HandleObservation(obs)
	}

	c.lastUpdate = time.Now()
	return updated
}

// PutSnapshot writes the cockpit's state into the snapshot, nested under
// the cockpit's name when set.
func (c *Cockpit[L]) PutSnapshot(into *snapshot.Snapshot, descriptive bool) {
	putNamed(into, c.name, descriptive, c.putValues)
}

func (c *Cockpit[L]) putValues(into *snapshot.Snapshot, descriptive bool) {
	putDescriptives(into, descriptive, c.title, c.description)
	if !putActivity(into, c.lastUpdate, c.maxInactivity) {
		return
	}
	for _, panel := range c.panels {
		panel.PutSnapshot(into, descriptive)
	}
	for _, s := range c.snapshotters {
		s.PutSnapshot(into, descriptive)
	}
	for _, handler := range c.handlers {
		handler.PutSnapshot(into, descriptive)
	}
}
