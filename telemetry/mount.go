package telemetry

import (
	"time"

	"github.com/jonwraymond/flightdeck/snapshot"
)

// ProcessorMount groups processors under one name so subsystems compose
// into a single tree. A mount is itself a MessageProcessor, so mounts nest
// to arbitrary depth.
type ProcessorMount struct {
	name          string
	title         string
	description   string
	processors    []MessageProcessor
	snapshotters  []Snapshotter
	lastActivity  time.Time
	maxInactivity time.Duration
}

// NewProcessorMount creates a mount with the given name. A name is the
// default since a mount exists to group other components; pass the empty
// string to merge its children into the parent level.
func NewProcessorMount(name string) *ProcessorMount {
	return &ProcessorMount{name: name, lastActivity: time.Now()}
}

// Name returns the name of the mount; empty means unnamed.
func (m *ProcessorMount) Name() string {
	return m.name
}

// SetName sets the name. The name becomes a path segment within a snapshot.
func (m *ProcessorMount) SetName(name string) {
	m.name = name
}

// SetTitle sets the title emitted in descriptive snapshots.
func (m *ProcessorMount) SetTitle(title string) {
	m.title = title
}

// SetDescription sets the description emitted in descriptive snapshots.
func (m *ProcessorMount) SetDescription(description string) {
	m.description = description
}

// SetInactivityLimit sets the maximum time the mount may be without
// activity before snapshots show it as inactive and omit its values.
func (m *ProcessorMount) SetInactivityLimit(limit time.Duration) {
	m.maxInactivity = limit
}

// AddProcessor adds a processor. Nil processors are ignored.
func (m *ProcessorMount) AddProcessor(p MessageProcessor) {
	if p == nil {
		return
	}
	m.processors = append(m.processors, p)
}

// AddSnapshotter adds a polled snapshot contributor. Nil is ignored.
func (m *ProcessorMount) AddSnapshotter(s Snapshotter) {
	if s == nil {
		return
	}
	m.snapshotters = append(m.snapshotters, s)
}

// Processors returns the owned processors in insertion order.
func (m *ProcessorMount) Processors() []MessageProcessor {
	return m.processors
}

// Process forwards the same max and strategy to every owned processor —
// each applies its own bounded drain — and combines the outcomes.
func (m *ProcessorMount) Process(max int, strategy ProcessingStrategy) ProcessingOutcome {
	var outcome ProcessingOutcome
	for _, p := range m.processors {
		outcome.Combine(p.Process(max, strategy))
	}
	if outcome.Any() {
		m.lastActivity = time.Now()
	}
	return outcome
}

// PutSnapshot writes the mount's state into the snapshot, nested under the
// mount's name when set.
func (m *ProcessorMount) PutSnapshot(into *snapshot.Snapshot, descriptive bool) {
	putNamed(into, m.name, descriptive, m.putValues)
}

func (m *ProcessorMount) putValues(into *snapshot.Snapshot, descriptive bool) {
	putDescriptives(into, descriptive, m.title, m.description)
	if !putActivity(into, m.lastActivity, m.maxInactivity) {
		return
	}
	for _, p := range m.processors {
		p.PutSnapshot(into, descriptive)
	}
	for _, s := range m.snapshotters {
		s.PutSnapshot(into, descriptive)
	}
}

var (
	_ MessageProcessor = (*ProcessorMount)(nil)
	_ Aggregator       = (*ProcessorMount)(nil)
)
