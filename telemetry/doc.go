// Package telemetry provides a non-blocking, in-process telemetry pipeline.
//
// Application code emits labeled observations from many goroutines through a
// Transmitter. A paired Processor drains them on its own schedule, applies a
// drop policy, and dispatches surviving observations through a tree of
// Cockpits and Panels to the instruments interested in each label. A separate
// read path renders the whole tree into an ordered snapshot.
//
// It is a pure instrumentation library: no execution, no transport, no I/O.
// Telemetry failures never disrupt the instrumented application — sending
// never blocks, processing never returns errors, and a disconnected pipeline
// degrades to counted no-ops.
package telemetry
