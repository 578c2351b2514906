// Package otel bridges engine metrics into OpenTelemetry observable
// instruments. The exporter registers a single callback that snapshots the
// engine's counters on each collection cycle.
package otel
