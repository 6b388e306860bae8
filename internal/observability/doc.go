// Package observability groups the logging, metrics and tracing support of the
// beer catalog service.
//
// Subpackages:
//   - logging: slog logger construction and request-scoped loggers
//   - metrics: Prometheus collectors for HTTP traffic and catalog queries
//   - tracing: OpenTelemetry tracer and HTTP middleware
package observability
