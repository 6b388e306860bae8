// Package tracing provides OpenTelemetry tracing for the service.
//
// The HTTP middleware starts a server span per request and propagates W3C trace
// context; the catalog service starts child spans for the query pipeline through
// GetTracer. Exporters are configured by the process through the global
// otel.TracerProvider.
package tracing
