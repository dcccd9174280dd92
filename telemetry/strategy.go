package telemetry

import "time"

type strategyKind int

const (
	// The zero kind is unset so config structs can detect an unspecified
	// strategy; it behaves like ProcessAll.
	strategyUnset strategyKind = iota
	strategyProcessAll
	strategyDropAll
	strategyDropOlderThan
)

// ProcessingStrategy is the policy governing which pending observations are
// admitted versus dropped during a drain. Structural messages are never
// subject to it.
type ProcessingStrategy struct {
	kind   strategyKind
	maxAge time.Duration
}

// ProcessAll admits every observation.
func ProcessAll() ProcessingStrategy {
	return ProcessingStrategy{kind: strategyProcessAll}
}

// DropAll drops every observation. Dropped observations are counted but
// never reach any instrument.
func DropAll() ProcessingStrategy {
	return ProcessingStrategy{kind: strategyDropAll}
}

// DropOlderThan admits only observations strictly newer than maxAge before
// the start of the Process call. The cutoff is computed once per call, so a
// long-running batch does not retroactively admit messages it would have
// dropped at call start.
func DropOlderThan(maxAge time.Duration) ProcessingStrategy {
	return ProcessingStrategy{kind: strategyDropOlderThan, maxAge: maxAge}
}

// DefaultStrategy drops observations older than one minute.
func DefaultStrategy() ProcessingStrategy {
	return DropOlderThan(60 * time.Second)
}

// decider is a strategy bound to the start of one Process call.
type decider struct {
	kind     strategyKind
	deadline time.Time
}

func (s ProcessingStrategy) decider(now time.Time) decider {
	d := decider{kind: s.kind}
	if s.kind == strategyDropOlderThan {
		d.deadline = now.Add(-s.maxAge)
	}
	return d
}

func (d decider) admits(timestamp time.Time) bool {
	switch d.kind {
	case strategyDropAll:
		return false
	case strategyDropOlderThan:
		return timestamp.After(d.deadline)
	default:
		return true
	}
}

// ProcessingOutcome is the result of draining messages, used by callers for
// outcome accounting and scheduling decisions.
type ProcessingOutcome struct {
	// Processed counts admitted observations and applied structural messages.
	Processed int
	// Dropped counts observations rejected by the strategy.
	Dropped int
	// InstrumentsUpdated sums the per-dispatch instrument update counts.
	InstrumentsUpdated int
}

// Combine adds the corresponding counters of the other outcome.
func (o *ProcessingOutcome) Combine(other ProcessingOutcome) {
	o.Processed += other.Processed
	o.Dropped += other.Dropped
	o.InstrumentsUpdated += other.InstrumentsUpdated
}

// Any reports whether anything was processed or dropped.
func (o ProcessingOutcome) Any() bool {
	return o.Processed > 0 || o.Dropped > 0
}
