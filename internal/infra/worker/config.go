package worker

import (
	"fmt"
	"log/slog"
	"time"

	"readability-audit/internal/pkg/config"
)

// WorkerConfig controls the scheduled audit worker: when runs fire, how many
// pages are audited at once, and how the run is bounded.
type WorkerConfig struct {
	// CronSchedule is a five-field cron expression, e.g. "30 5 * * *".
	CronSchedule string
	// Timezone is the IANA zone the schedule is evaluated in.
	Timezone string
	// AuditParallelism caps concurrent page audits within one run, 1 to 50.
	AuditParallelism int
	// AuditTimeout cancels a run that exceeds it.
	AuditTimeout time.Duration
	// TargetsFile is the YAML file listing pages and feeds to audit.
	TargetsFile string
	// HealthPort serves the liveness and readiness probes, 1024 to 65535.
	HealthPort int
}

// DefaultConfig runs a daily audit at 5:30 UTC with five concurrent page
// audits and a 30 minute run timeout.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:     "30 5 * * *",
		Timezone:         "UTC",
		AuditParallelism: 5,
		AuditTimeout:     30 * time.Minute,
		TargetsFile:      "targets.yaml",
		HealthPort:       9091,
	}
}

// Validate checks every field and reports all failures together.
func (c *WorkerConfig) Validate() error {
	var errors []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errors = append(errors, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errors = append(errors, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateIntRange(c.AuditParallelism, 1, 50); err != nil {
		errors = append(errors, fmt.Errorf("audit parallelism: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.AuditTimeout); err != nil {
		errors = append(errors, fmt.Errorf("audit timeout: %w", err))
	}
	if c.TargetsFile == "" {
		errors = append(errors, fmt.Errorf("targets file: cannot be empty"))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errors = append(errors, fmt.Errorf("health port: %w", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation failed: %v", errors)
	}
	return nil
}

// LoadConfigFromEnv reads worker settings from the environment, falling back
// to defaults field by field when a value is missing or invalid. Every
// fallback is logged and counted in metrics; the function never fails, so the
// worker always starts with a usable configuration.
//
// Environment variables: AUDIT_CRON_SCHEDULE, WORKER_TIMEZONE,
// AUDIT_PARALLELISM, AUDIT_TIMEOUT, AUDIT_TARGETS_FILE, WORKER_HEALTH_PORT.
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	// noteFallback logs and counts a per-field fallback, keeping the overall
	// flag up to date.
	noteFallback := func(result config.ConfigLoadResult, metricField, logField string) {
		if !result.FallbackApplied {
			return
		}
		fallbackApplied = true
		metrics.RecordValidationError(metricField)
		metrics.RecordFallback(metricField, "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", logField),
				slog.String("warning", warning))
		}
	}

	result := config.LoadEnvWithFallback("AUDIT_CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = result.Value.(string)
	noteFallback(result, "cron_schedule", "CronSchedule")

	result = config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	noteFallback(result, "timezone", "Timezone")

	result = config.LoadEnvInt("AUDIT_PARALLELISM", cfg.AuditParallelism, func(v int) error {
		return config.ValidateIntRange(v, 1, 50)
	})
	cfg.AuditParallelism = result.Value.(int)
	noteFallback(result, "audit_parallelism", "AuditParallelism")

	// 1m-4h range keeps a misconfigured timeout from wedging the scheduler
	result = config.LoadEnvDuration("AUDIT_TIMEOUT", cfg.AuditTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 4*time.Hour)
	})
	cfg.AuditTimeout = result.Value.(time.Duration)
	noteFallback(result, "audit_timeout", "AuditTimeout")

	cfg.TargetsFile = config.LoadEnvString("AUDIT_TARGETS_FILE", cfg.TargetsFile)

	result = config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	noteFallback(result, "health_port", "HealthPort")

	metrics.SetFallbackActive("", fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
