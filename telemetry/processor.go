package telemetry

import (
	"context"
	"time"

	"github.com/jonwraymond/flightdeck/snapshot"
)

// Processor is the consumer side of a transmitter pair. It receives the
// observations and structural messages and processes them in batches on
// whatever schedule the host chooses.
//
// Contract:
// - Concurrency: Process calls on the same processor must not be
//   interleaved; the tree it owns is single-writer.
// - Errors: Process never fails — an empty queue ends the batch, a
//   disconnected queue degrades the processor permanently to zeroed
//   outcomes.
type Processor[L comparable] struct {
	name          string
	title         string
	description   string
	cockpits      []*Cockpit[L]
	handlers      []Handler[L]
	snapshotters  []Snapshotter
	ch            *channel[L]
	lastActivity  time.Time
	maxInactivity time.Duration
	disconnected  bool
	logger        Logger
}

// NewPair creates a Transmitter and the corresponding Processor. The name
// causes a grouping in the snapshot.
func NewPair[L comparable](name string) (*Transmitter[L], *Processor[L]) {
	tx, rx := NewUnnamedPair[L]()
	rx.name = name
	return tx, rx
}

// NewUnnamedPair creates a Transmitter and the corresponding Processor.
// No grouping occurs unless a name is set.
func NewUnnamedPair[L comparable]() (*Transmitter[L], *Processor[L]) {
	ch := newChannel[L]()
	tx := &Transmitter[L]{ch: ch}
	rx := &Processor[L]{
		ch:           ch,
		lastActivity: time.Now(),
		logger:       NopLogger(),
	}
	return tx, rx
}

// Name returns the name of the processor; empty means unnamed.
func (p *Processor[L]) Name() string {
	return p.name
}

// SetName sets the name. The name becomes a path segment within a snapshot.
func (p *Processor[L]) SetName(name string) {
	p.name = name
}

// SetTitle sets the title emitted in descriptive snapshots.
func (p *Processor[L]) SetTitle(title string) {
	p.title = title
}

// SetDescription sets the description emitted in descriptive snapshots.
func (p *Processor[L]) SetDescription(description string) {
	p.description = description
}

// SetInactivityLimit sets the maximum time the processor may be without
// activity before snapshots show it as inactive and omit its values.
func (p *Processor[L]) SetInactivityLimit(limit time.Duration) {
	p.maxInactivity = limit
}

// WithInactivityLimit sets the inactivity limit and returns the processor.
func (p *Processor[L]) WithInactivityLimit(limit time.Duration) *Processor[L] {
	p.SetInactivityLimit(limit)
	return p
}

// SetLogger sets the logger used for the one-time disconnect warning.
func (p *Processor[L]) SetLogger(logger Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// AddCockpit adds a cockpit.
func (p *Processor[L]) AddCockpit(cockpit *Cockpit[L]) {
	p.cockpits = append(p.cockpits, cockpit)
}

// WithCockpit adds a cockpit and returns the processor.
func (p *Processor[L]) WithCockpit(cockpit *Cockpit[L]) *Processor[L] {
	p.AddCockpit(cockpit)
	return p
}

// Cockpits returns the owned cockpits in insertion order.
func (p *Processor[L]) Cockpits() []*Cockpit[L] {
	return p.cockpits
}

// AddHandler adds a generic observation handler.
func (p *Processor[L]) AddHandler(handler Handler[L]) {
	p.handlers = append(p.handlers, handler)
}

// WithHandler adds a generic observation handler and returns the processor.
func (p *Processor[L]) WithHandler(handler Handler[L]) *Processor[L] {
	p.AddHandler(handler)
	return p
}

// AddSnapshotter adds a polled snapshot contributor.
func (p *Processor[L]) AddSnapshotter(s Snapshotter) {
	p.snapshotters = append(p.snapshotters, s)
}

// WithSnapshotter adds a snapshotter and returns the processor.
func (p *Processor[L]) WithSnapshotter(s Snapshotter) *Processor[L] {
	p.AddSnapshotter(s)
	return p
}

// Close marks the receiving side gone: queued messages are discarded and
// all future sends on paired transmitters report dropped.
func (p *Processor[L]) Close() {
	p.ch.closeReceiver()
}

// Process receives up to max messages without blocking. Observations pass
// the strategy's admission decision before any dispatch; structural
// messages are applied immediately regardless of strategy. An empty receive
// consumes budget without ending the batch; a disconnect is logged once and
// degrades the processor permanently.
func (p *Processor[L]) Process(max int, strategy ProcessingStrategy) ProcessingOutcome {
	if p.disconnected {
		return ProcessingOutcome{}
	}

	var outcome ProcessingOutcome
	deciderNow := strategy.decider(time.Now())

	for received := 0; received < max; received++ {
		msg, status := p.ch.tryRecv()
		switch status {
		case recvOK:
			p.apply(&msg, deciderNow, &outcome)
		case recvEmpty:
			// Budget is consumed, the batch is not ended: an empty queue
			// burns the remaining budget in this loop.
		case recvDisconnected:
			p.logger.Warn(context.Background(),
				"failed to receive message, channel disconnected, processor degraded",
				Field{Key: "processor", Value: p.logName()})
			p.disconnected = true
		}
		if p.disconnected {
			break
		}
	}

	if outcome.Any() {
		p.lastActivity = time.Now()
	}
	return outcome
}

func (p *Processor[L]) apply(msg *message[L], d decider, outcome *ProcessingOutcome) {
	switch msg.kind {
	case messageObservation:
		if !d.admits(msg.observation.Timestamp) {
			outcome.Dropped++
			return
		}
		for _, cockpit := range p.cockpits {
			outcome.InstrumentsUpdated += cockpit.HandleObservation(&msg.observation)
		}
		for _, handler := range p.handlers {
			outcome.InstrumentsUpdated += handler.HandleObservation(&msg.observation)
		}
		outcome.Processed++
	case messageAddCockpit:
		p.AddCockpit(msg.cockpit)
		outcome.Processed++
	case messageAddHandler:
		p.AddHandler(msg.handler)
		outcome.Processed++
	case messageAddPanel:
		// An unknown cockpit name discards the panel silently; the message
		// still counts as processed.
		for _, cockpit := range p.cockpits {
			if cockpit.Name() == msg.cockpitName {
				cockpit.AddPanel(msg.panel)
				break
			}
		}
		outcome.Processed++
	}
}

func (p *Processor[L]) logName() string {
	if p.name == "" {
		return "<unnamed>"
	}
	return p.name
}

// PutSnapshot writes the processor's state into the snapshot, nested under
// the processor's name when set.
func (p *Processor[L]) PutSnapshot(into *snapshot.Snapshot, descriptive bool) {
	putNamed(into, p.name, descriptive, p.putValues)
}

func (p *Processor[L]) putValues(into *snapshot.Snapshot, descriptive bool) {
	putDescriptives(into, descriptive, p.title, p.description)
	if !putActivity(into, p.lastActivity, p.maxInactivity) {
		return
	}
	for _, cockpit := range p.cockpits {
		cockpit.PutSnapshot(into, descriptive)
	}
	for _, handler := range p.handlers {
		handler.PutSnapshot(into, descriptive)
	}
	for _, s := range p.snapshotters {
		s.PutSnapshot(into, descriptive)
	}
}

var _ MessageProcessor = (*Processor[string])(nil)
