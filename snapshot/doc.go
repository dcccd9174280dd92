// Package snapshot provides the ordered, nested value tree that the
// telemetry pipeline renders its state into.
//
// A Snapshot is an insertion-ordered sequence of (name, value) items where a
// value is a number, an integer, a boolean, a string, or a nested Snapshot.
// Order is significant: rendering the same tree state twice produces the same
// sequence, which keeps snapshot output diffable and testable. Consumers
// serialize the tree to their transport format; this package only ships a
// deterministic JSON rendering.
package snapshot
