package telemetry

import (
	"sync/atomic"
	"time"
)

// Transmitter is the producer side of a processor pair. All send methods are
// non-blocking and safe for concurrent use; they report whether the message
// was enqueued. Once the paired processor is closed, sends fail permanently
// and silently report false instead of raising on every call.
type Transmitter[L comparable] struct {
	ch     *channel[L]
	closed atomic.Bool
}

// Send enqueues an observation.
func (t *Transmitter[L]) Send(obs Observation[L]) bool {
	return t.ch.send(message[L]{kind: messageObservation, observation: obs})
}

// Observed sends count occurrences of the label observed now.
func (t *Transmitter[L]) Observed(label L, count uint64) bool {
	return t.ObservedAt(label, count, time.Now())
}

// ObservedAt sends count occurrences of the label observed at the given time.
func (t *Transmitter[L]) ObservedAt(label L, count uint64, timestamp time.Time) bool {
	return t.Send(Observed(label, count, timestamp))
}

// ObservedOne sends one occurrence of the label observed now.
func (t *Transmitter[L]) ObservedOne(label L) bool {
	return t.ObservedOneAt(label, time.Now())
}

// ObservedOneAt sends one occurrence of the label observed at the given time.
func (t *Transmitter[L]) ObservedOneAt(label L, timestamp time.Time) bool {
	return t.Send(ObservedOne(label, timestamp))
}

// ObservedOneValue sends one occurrence with a value observed now.
func (t *Transmitter[L]) ObservedOneValue(label L, value float64) bool {
	return t.ObservedOneValueAt(label, value, time.Now())
}

// ObservedOneValueAt sends one occurrence with a value observed at the given
// time.
func (t *Transmitter[L]) ObservedOneValueAt(label L, value float64, timestamp time.Time) bool {
	return t.Send(ObservedOneValue(label, value, timestamp))
}

// MeasureTime sends the elapsed time since start as a value observation in
// milliseconds, timestamped now.
func (t *Transmitter[L]) MeasureTime(label L, start time.Time) bool {
	now := time.Now()
	elapsedMs := float64(now.Sub(start)) / float64(time.Millisecond)
	return t.Send(ObservedOneValue(label, elapsedMs, now))
}

// AddCockpit asks the processor to adopt the cockpit. The transmitter takes
// ownership of the cockpit; it must not be used afterwards.
func (t *Transmitter[L]) AddCockpit(cockpit *Cockpit[L]) bool {
	return t.ch.send(message[L]{kind: messageAddCockpit, cockpit: cockpit})
}

// AddHandler asks the processor to adopt the handler.
func (t *Transmitter[L]) AddHandler(handler Handler[L]) bool {
	return t.ch.send(message[L]{kind: messageAddHandler, handler: handler})
}

// AddPanelToCockpit asks the processor to attach the panel to the cockpit
// with the given name. If no owned cockpit matches the name the panel is
// silently discarded — there is no error surface for unresolved names.
func (t *Transmitter[L]) AddPanelToCockpit(cockpitName string, panel *Panel[L]) bool {
	return t.ch.send(message[L]{kind: messageAddPanel, cockpitName: cockpitName, panel: panel})
}

// Clone returns an independent transmitter feeding the same processor.
func (t *Transmitter[L]) Clone() *Transmitter[L] {
	t.ch.addSender()
	return &Transmitter[L]{ch: t.ch}
}

// Close releases this transmitter's hold on the queue. Once every clone is
// closed the processor observes a disconnected channel after draining the
// backlog. Close is idempotent.
func (t *Transmitter[L]) Close() {
	if t.closed.Swap(true) {
		return
	}
	t.ch.dropSender()
}
