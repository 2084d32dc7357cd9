package slo

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SLO targets define the service level objectives for the application.
// These targets are used to measure and monitor service reliability.
const (
	// AvailabilitySLO defines the target uptime percentage (99.9% = 43 minutes downtime per month)
	AvailabilitySLO = 99.9

	// ErrorRateSLO defines the maximum acceptable error rate as a ratio (0.1% = 0.001)
	ErrorRateSLO = 0.001

	// DefaultUpdateInterval is how often the SLO gauges are recomputed.
	DefaultUpdateInterval = time.Minute
)

// SLO tracking metrics
// These gauges are updated periodically based on the request outcomes
// recorded since process start.
var (
	// SLOAvailability tracks the current availability ratio (0-1)
	// calculated as: (total_requests - 5xx_errors) / total_requests
	SLOAvailability = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_availability_ratio",
			Help: "Current availability ratio (0-1), target: 0.999",
		},
	)

	// SLOErrorRate tracks the current error rate ratio (0-1)
	// calculated as: 5xx_errors / total_requests
	SLOErrorRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_error_rate_ratio",
			Help: "Current error rate ratio (0-1), target: 0.001",
		},
	)
)

var (
	totalRequests atomic.Int64
	errorRequests atomic.Int64
)

// RecordRequest records the outcome of one HTTP request for SLO tracking.
// Responses with a 5xx status count against availability.
func RecordRequest(statusCode int) {
	totalRequests.Add(1)
	if statusCode >= 500 {
		errorRequests.Add(1)
	}
}

// Update recomputes the SLO gauges from the recorded request outcomes.
// With no recorded requests the service counts as fully available.
func Update() {
	total := totalRequests.Load()
	if total == 0 {
		SLOAvailability.Set(1)
		SLOErrorRate.Set(0)
		return
	}

	errors := errorRequests.Load()
	errorRate := float64(errors) / float64(total)
	SLOAvailability.Set(1 - errorRate)
	SLOErrorRate.Set(errorRate)
}

// StartTracking periodically updates the SLO gauges until the context is
// cancelled. Non-positive intervals use DefaultUpdateInterval.
func StartTracking(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultUpdateInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				Update()
			}
		}
	}()
}

// Reset clears the recorded request outcomes. Intended for tests.
func Reset() {
	totalRequests.Store(0)
	errorRequests.Store(0)
}
