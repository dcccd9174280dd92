package telemetry

import (
	"sync"
	"sync/atomic"

	"github.com/jonwraymond/flightdeck/snapshot"
)

// fakeInstrument records updates and reports a configurable change count.
type fakeInstrument struct {
	name    string
	updates int
	last    Update
	ret     int
}

func newFakeInstrument(name string) *fakeInstrument {
	return &fakeInstrument{name: name, ret: 1}
}

func (f *fakeInstrument) Update(with *Update) int {
	f.updates++
	f.last = *with
	return f.ret
}

func (f *fakeInstrument) PutSnapshot(into *snapshot.Snapshot, descriptive bool) {
	into.PutInt(f.name, int64(f.updates))
}

// fakeHandler accepts a single label and counts handled observations.
type fakeHandler struct {
	name    string
	label   string
	handled int
	ret     int
}

func newFakeHandler(name, label string) *fakeHandler {
	return &fakeHandler{name: name, label: label, ret: 1}
}

func (f *fakeHandler) AcceptsLabel(label string) bool {
	return label == f.label
}

func (f *fakeHandler) HandleObservation(obs *Observation[string]) int {
	if obs.Label != f.label {
		return 0
	}
	f.handled++
	return f.ret
}

func (f *fakeHandler) PutSnapshot(into *snapshot.Snapshot, descriptive bool) {
	into.PutInt(f.name, int64(f.handled))
}

// fakeSnapshotter writes one fixed item.
type fakeSnapshotter struct {
	name string
}

func (f *fakeSnapshotter) PutSnapshot(into *snapshot.Snapshot, descriptive bool) {
	into.PutBool(f.name, true)
}

// fakeProcessor records Process calls; state is guarded because the driver
// invokes it from its own goroutine.
type fakeProcessor struct {
	name         string
	calls        atomic.Int64
	mu           sync.Mutex
	lastMax      int
	lastStrategy ProcessingStrategy
	outcome      ProcessingOutcome
}

func newFakeProcessor(name string) *fakeProcessor {
	return &fakeProcessor{name: name}
}

func (f *fakeProcessor) Process(max int, strategy ProcessingStrategy) ProcessingOutcome {
	f.mu.Lock()
	f.lastMax = max
	f.lastStrategy = strategy
	outcome := f.outcome
	f.mu.Unlock()
	f.calls.Add(1)
	return outcome
}

func (f *fakeProcessor) PutSnapshot(into *snapshot.Snapshot, descriptive bool) {
	into.PutInt(f.name, f.calls.Load())
}

func (f *fakeProcessor) last() (int, ProcessingStrategy) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastMax, f.lastStrategy
}

func (f *fakeProcessor) setOutcome(outcome ProcessingOutcome) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcome = outcome
}
