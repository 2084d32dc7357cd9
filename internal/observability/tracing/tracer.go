package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// One named tracer for the whole process. Spans from the HTTP middleware
// and from manual instrumentation all land under the same scope, so trace
// views group them together.
var tracer = otel.Tracer("readability-audit")

// GetTracer exposes the shared tracer for code that opens its own spans:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "audit.run")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
