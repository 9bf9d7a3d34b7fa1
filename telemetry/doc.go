// Package telemetry wires OpenTelemetry tracing for the server.
//
// The kv store and the HTTP middleware create spans through the global
// tracer provider. Until [Setup] installs an exporting provider those spans
// are no-ops.
package telemetry
