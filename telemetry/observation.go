package telemetry

import "time"

// ObservationKind distinguishes the three payload shapes an observation or
// update can carry.
type ObservationKind int

const (
	// ObservedCount is N occurrences without a value.
	ObservedCount ObservationKind = iota
	// ObservedSingle is exactly one occurrence.
	ObservedSingle
	// ObservedSingleValue is one occurrence carrying a measured value.
	ObservedSingleValue
)

// Observation is one telemetry event: a label, a timestamp and a payload.
//
// The label type must be comparable; labels are matched by value equality.
// Count is only meaningful for ObservedCount and Value only for
// ObservedSingleValue. A count of 0 is legal and dispatches normally;
// instruments that care about counts treat it as a no-op.
type Observation[L comparable] struct {
	Kind      ObservationKind
	Label     L
	Count     uint64
	Value     float64
	Timestamp time.Time
}

// Observed creates an observation of count occurrences without a value.
func Observed[L comparable](label L, count uint64, timestamp time.Time) Observation[L] {
	return Observation[L]{Kind: ObservedCount, Label: label, Count: count, Timestamp: timestamp}
}

// ObservedOne creates an observation of exactly one occurrence.
func ObservedOne[L comparable](label L, timestamp time.Time) Observation[L] {
	return Observation[L]{Kind: ObservedSingle, Label: label, Timestamp: timestamp}
}

// ObservedOneValue creates an observation of one occurrence with a value.
func ObservedOneValue[L comparable](label L, value float64, timestamp time.Time) Observation[L] {
	return Observation[L]{Kind: ObservedSingleValue, Label: label, Value: value, Timestamp: timestamp}
}

// Update is an observation with the label stripped: the routing layer has
// already resolved where it belongs, and the payload is all an instrument
// needs to mutate its state.
type Update struct {
	Kind      ObservationKind
	Count     uint64
	Value     float64
	Timestamp time.Time
}

// Split is the owning projection: it consumes the observation and returns
// its label together with the label-stripped update. Timestamp and payload
// are carried over exactly.
func (o Observation[L]) Split() (L, Update) {
	return o.Label, Update{Kind: o.Kind, Count: o.Count, Value: o.Value, Timestamp: o.Timestamp}
}

// Project is the borrowing projection: the label stays on the observation
// and only the update is produced. Equivalent to Split for any query that
// inspects values.
func (o *Observation[L]) Project() Update {
	return Update{Kind: o.Kind, Count: o.Count, Value: o.Value, Timestamp: o.Timestamp}
}
