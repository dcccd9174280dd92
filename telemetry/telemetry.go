package telemetry

import (
	"time"

	"github.com/jonwraymond/flightdeck/snapshot"
)

// Snapshotter contributes values to a snapshot.
//
// Contract:
// - Concurrency: called from the goroutine that owns the node tree; never
//   concurrently with observation handling on the same subtree.
// - Errors: must be side-effect free on the tree and must not panic.
type Snapshotter interface {
	// PutSnapshot writes the current state into the given snapshot.
	// When descriptive is true, titles and descriptions are emitted as well.
	PutSnapshot(into *snapshot.Snapshot, descriptive bool)
}

// Instrument consumes label-stripped updates and contributes snapshot values.
//
// Contract:
// - Concurrency: driven by a single consumer; implementations need no locking.
// - Errors: Update must be total; meaningless updates are counted no-ops.
type Instrument interface {
	Snapshotter
	// Update applies the update and returns the number of instruments whose
	// state changed, normally 0 or 1.
	Update(with *Update) int
}

// Handler handles labeled observations. Panels, Cockpits and arbitrary
// custom handlers are interchangeable at this boundary.
type Handler[L comparable] interface {
	Snapshotter
	// AcceptsLabel reports whether observations with the label are handled.
	AcceptsLabel(label L) bool
	// HandleObservation dispatches the observation and returns the number of
	// instruments updated.
	HandleObservation(obs *Observation[L]) int
}

// MessageProcessor drains pending telemetry messages.
//
// Contract:
// - Concurrency: Process calls on the same value must not be interleaved.
// - Errors: Process is total; failure shows up only in the outcome counters.
type MessageProcessor interface {
	Snapshotter
	// Process receives up to max messages without blocking and applies the
	// strategy's drop decision to each observation.
	Process(max int, strategy ProcessingStrategy) ProcessingOutcome
}

// Aggregator groups processors. Snapshotters can be added almost everywhere,
// so the add method lives here too.
type Aggregator interface {
	// AddProcessor adds a processor.
	AddProcessor(p MessageProcessor)
	// AddSnapshotter adds a snapshotter.
	AddSnapshotter(s Snapshotter)
}

// putDescriptives emits the optional title and description of a node.
func putDescriptives(into *snapshot.Snapshot, descriptive bool, title, description string) {
	if !descriptive {
		return
	}
	if title != "" {
		into.PutText("_title", title)
	}
	if description != "" {
		into.PutText("_description", description)
	}
}

// putActivity emits the liveness flags of a node with an inactivity limit.
// It returns false when the node is stale: the caller must not render its
// contents, only the flags, so stale values are never presented as current.
func putActivity(into *snapshot.Snapshot, lastActivity time.Time, limit time.Duration) bool {
	if limit <= 0 {
		return true
	}
	if time.Since(lastActivity) > limit {
		into.PutBool("_inactive", true)
		into.PutBool("_active", false)
		return false
	}
	into.PutBool("_inactive", false)
	into.PutBool("_active", true)
	return true
}

// putNamed fills a nested snapshot under name, or the caller's snapshot
// directly when the name is empty.
func putNamed(into *snapshot.Snapshot, name string, descriptive bool, fill func(*snapshot.Snapshot, bool)) {
	if name == "" {
		fill(into, descriptive)
		return
	}
	nested := snapshot.New()
	fill(nested, descriptive)
	into.PutNested(name, nested)
}
