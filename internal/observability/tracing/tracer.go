package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "beer-catalog"

// GetTracer returns the tracer used for application spans. It is resolved from
// the global provider on every call so a provider installed after start-up is
// honored.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "catalog.fetch")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}
