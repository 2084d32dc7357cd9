// Package http provides HTTP handlers and middleware for the analysis API.
// It includes the text analysis endpoints, health check endpoints, metrics
// collection, and various middleware components.
package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"readability-audit/pkg/readability"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string                 `json:"status"`            // "healthy" or "unhealthy"
	Message string                 `json:"message,omitempty"` // Optional status message
	Details map[string]interface{} `json:"details,omitempty"` // Optional additional details
}

// healthProbeText is a fixed sentence run through the analyzer on every
// health check. A failure here means the scoring pipeline is broken.
const healthProbeText = "The quick brown fox jumps over the lazy dog."

// HealthHandler handles health check endpoint requests.
// It runs the analyzer against a known probe text and returns detailed
// health status including the supported language set.
type HealthHandler struct {
	Analyzer *readability.Analyzer
	Version  string
}

// ServeHTTP performs health checks and returns the application health status.
// Returns 200 OK if healthy, or 503 Service Unavailable if any check fails.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	allHealthy := true

	analyzerCheck := h.checkAnalyzer(ctx)
	checks["analyzer"] = analyzerCheck
	if analyzerCheck.Status == "unhealthy" {
		allHealthy = false
	}

	checks["languages"] = CheckStatus{
		Status: "healthy",
		Details: map[string]interface{}{
			"supported": readability.SupportedLanguages(),
		},
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("health: failed to encode response: %v", err)
	}
}

// checkAnalyzer runs a probe analysis through the scoring pipeline.
func (h *HealthHandler) checkAnalyzer(ctx context.Context) CheckStatus {
	if h.Analyzer == nil {
		return CheckStatus{
			Status:  "unhealthy",
			Message: "not configured",
		}
	}

	start := time.Now()
	result, err := h.Analyzer.Analyze(ctx, healthProbeText, readability.LanguageEnglish)
	if err != nil {
		return CheckStatus{
			Status:  "unhealthy",
			Message: err.Error(),
		}
	}

	return CheckStatus{
		Status: "healthy",
		Details: map[string]interface{}{
			"probe_score":       result.Score,
			"probe_duration_ms": time.Since(start).Milliseconds(),
		},
	}
}

// ReadyHandler handles Kubernetes readiness probe requests.
// It verifies the analyzer can score text before the API accepts traffic.
type ReadyHandler struct {
	Analyzer *readability.Analyzer
}

// ServeHTTP performs readiness checks and returns 200 OK if ready,
// or 503 Service Unavailable if the analyzer is not ready.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.Analyzer == nil {
		http.Error(w, "analyzer not configured", http.StatusServiceUnavailable)
		return
	}

	if _, err := h.Analyzer.Analyze(ctx, healthProbeText, readability.LanguageEnglish); err != nil {
		http.Error(w, "analyzer not ready: "+err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		log.Printf("ready: failed to write response: %v", err)
	}
}

// LiveHandler handles Kubernetes liveness probe requests.
// It performs a lightweight check to verify the application is responsive.
type LiveHandler struct{}

// ServeHTTP performs a simple liveness check and always returns 200 OK
// if the application is running and able to respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		log.Printf("alive: failed to write response: %v", err)
	}
}
