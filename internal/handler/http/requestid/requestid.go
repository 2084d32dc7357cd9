// Package requestid tags every request with an ID so log lines from one
// request can be stitched back together.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const (
	// RequestIDKey stores the request ID in a request context.
	RequestIDKey contextKey = "request_id"
	// RequestIDHeader carries the ID on the wire, inbound and outbound.
	RequestIDHeader = "X-Request-ID"
)

// FromContext returns the request ID, or "" outside the middleware.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithRequestID stores id in ctx under RequestIDKey.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// Middleware reuses an incoming X-Request-ID or mints a UUID, echoes it on
// the response, and puts it in the request context for the loggers.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, requestID)

		ctx := WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
