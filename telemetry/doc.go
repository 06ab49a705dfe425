// Package telemetry wires OpenTelemetry tracing and metrics plus a small
// structured logger for hosts embedding the semantic cache.
//
// It is pure instrumentation setup: no cache logic, no I/O beyond exporter
// construction. Hosts hand the resulting providers to cache.New via options.
package telemetry
