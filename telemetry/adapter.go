package telemetry

import "github.com/jonwraymond/flightdeck/snapshot"

// InstrumentAdapter makes a bare instrument usable as a generic observation
// handler: it filters by label, projects the observation to an update and
// forwards it.
type InstrumentAdapter[L comparable] struct {
	filter     LabelFilter[L]
	instrument Instrument
}

// NewInstrumentAdapter wraps an instrument as a handler accepting all labels.
func NewInstrumentAdapter[L comparable](instrument Instrument) *InstrumentAdapter[L] {
	return &InstrumentAdapter[L]{filter: AcceptAllLabels[L](), instrument: instrument}
}

// NewFilteredInstrumentAdapter wraps an instrument as a handler accepting
// only labels the filter accepts.
func NewFilteredInstrumentAdapter[L comparable](filter LabelFilter[L], instrument Instrument) *InstrumentAdapter[L] {
	return &InstrumentAdapter[L]{filter: filter, instrument: instrument}
}

// AcceptsLabel reports whether observations with the label reach the
// instrument.
func (a *InstrumentAdapter[L]) AcceptsLabel(label L) bool {
	return a.filter.Accepts(label)
}

// HandleObservation forwards the update to the wrapped instrument when the
// label is accepted.
func (a *InstrumentAdapter[L]) HandleObservation(obs *Observation[L]) int {
	if !a.filter.Accepts(obs.Label) {
		return 0
	}
	update := obs.Project()
	return a.instrument.Update(&update)
}

// PutSnapshot delegates to the wrapped instrument.
func (a *InstrumentAdapter[L]) PutSnapshot(into *snapshot.Snapshot, descriptive bool) {
	a.instrument.PutSnapshot(into, descriptive)
}
