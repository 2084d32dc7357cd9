// Package tracing provides OpenTelemetry tracing integration.
//
// The HTTP middleware extracts W3C Trace Context from incoming requests,
// creates a server span per request, and echoes the trace ID in the
// X-Trace-Id response header so logs and traces can be correlated.
//
// Example usage:
//
//	import "readability-audit/internal/observability/tracing"
//
//	mux := http.NewServeMux()
//	mux.Handle("/v1/analyze", analyzeHandler)
//	handler := tracing.Middleware(mux)
package tracing
