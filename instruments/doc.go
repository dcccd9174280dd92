// Package instruments provides the stateful aggregators driven by telemetry
// updates: counter, gauge, meter and histogram.
//
// Instruments are not safe for concurrent use on their own. The pipeline
// drives them from a single consumer, which is the only supported way to
// mutate them; snapshot rendering happens from that same owner.
package instruments
