package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"readability-audit/internal/handler/http/respond"
	"readability-audit/internal/infra/feed"
	"readability-audit/internal/infra/fetcher"
	workerPkg "readability-audit/internal/infra/worker"
	"readability-audit/internal/observability/logging"
	auditUC "readability-audit/internal/usecase/audit"
	"readability-audit/pkg/readability"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Int("audit_parallelism", workerConfig.AuditParallelism),
		slog.Duration("audit_timeout", workerConfig.AuditTimeout),
		slog.String("targets_file", workerConfig.TargetsFile),
		slog.Int("health_port", workerConfig.HealthPort))

	pages, feeds, err := workerPkg.LoadTargets(workerConfig.TargetsFile)
	if err != nil {
		logger.Error("failed to load audit targets",
			slog.String("file", workerConfig.TargetsFile),
			slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("audit targets loaded",
		slog.Int("pages", len(pages)),
		slog.Int("feeds", len(feeds)))

	svc, engineMetrics, err := setupAuditService(logger, workerConfig)
	if err != nil {
		logger.Error("failed to set up audit service", slog.Any("error", err))
		os.Exit(1)
	}

	startMetricsServer(ctx, logger, engineMetrics)

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	startCronWorker(ctx, logger, svc, pages, feeds, workerConfig, workerMetrics, healthServer)
}

// setupAuditService creates the audit service with fetcher, feed lister and
// a shared analyzer whose syllable cache persists across runs.
func setupAuditService(logger *slog.Logger, cfg *workerPkg.WorkerConfig) (*auditUC.Service, *readability.PrometheusMetrics, error) {
	engineMetrics := readability.NewPrometheusMetrics()
	analyzerCfg := readability.DefaultConfig()
	analyzerCfg.Metrics = engineMetrics
	analyzer := readability.New(analyzerCfg)

	fetchConfig, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("load content fetch configuration: %w", err)
	}
	pageFetcher := fetcher.NewPageFetcher(fetchConfig)
	logger.Info("page fetcher initialized",
		slog.Duration("timeout", fetchConfig.Timeout),
		slog.Float64("requests_per_second", fetchConfig.RequestsPerSecond),
		slog.Bool("deny_private_ips", fetchConfig.DenyPrivateIPs))

	feedLister := feed.NewRSSLister(nil)

	svc := auditUC.NewService(pageFetcher, feedLister, analyzer, logger, auditUC.Config{
		Parallelism: cfg.AuditParallelism,
	})
	return svc, engineMetrics, nil
}

// startCronWorker starts the cron scheduler and runs the audit job
// periodically until the process receives SIGINT or SIGTERM.
func startCronWorker(
	ctx context.Context,
	logger *slog.Logger,
	svc *auditUC.Service,
	pages, feeds []auditUC.Target,
	cfg *workerPkg.WorkerConfig,
	workerMetrics *workerPkg.WorkerMetrics,
	healthServer *workerPkg.HealthServer,
) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runAuditJob(ctx, logger, svc, pages, feeds, cfg, workerMetrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down worker...")

	// Stop scheduling new jobs and wait for a running job to finish.
	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(cfg.AuditTimeout):
		logger.Warn("running audit job did not finish before shutdown timeout")
	}
	logger.Info("worker stopped")
}

// runAuditJob executes a single audit run over all configured pages and
// feeds with a run-level timeout.
func runAuditJob(
	ctx context.Context,
	logger *slog.Logger,
	svc *auditUC.Service,
	pages, feeds []auditUC.Target,
	cfg *workerPkg.WorkerConfig,
	workerMetrics *workerPkg.WorkerMetrics,
) {
	startTime := time.Now()
	workerMetrics.RecordRun("started")
	logger.Info("audit run started",
		slog.Int("pages", len(pages)),
		slog.Int("feeds", len(feeds)))

	runCtx, cancel := context.WithTimeout(ctx, cfg.AuditTimeout)
	defer cancel()

	results, err := svc.AuditTargets(runCtx, pages)
	if err != nil {
		logger.Error("page audits failed", slog.Any("error", respond.SanitizeError(err)))
		workerMetrics.RecordRun("failure")
		workerMetrics.RecordRunDuration(time.Since(startTime).Seconds())
		return
	}

	for _, f := range feeds {
		feedResults, err := svc.AuditFeed(runCtx, f.URL, f.Languages)
		if err != nil {
			// One broken feed does not abort the run.
			logger.Error("feed audit failed",
				slog.String("feed_url", f.URL),
				slog.Any("error", respond.SanitizeError(err)))
			continue
		}
		results = append(results, feedResults...)
	}

	passed, failed := 0, 0
	for _, r := range results {
		if r.Passed {
			passed++
		} else {
			failed++
			logger.Warn("page below target score",
				slog.String("page_url", r.PageURL),
				slog.String("language", r.Language),
				slog.Float64("score", r.Metrics.Score),
				slog.Float64("target_score", r.TargetScore))
		}
	}

	duration := time.Since(startTime)
	workerMetrics.RecordRun("success")
	workerMetrics.RecordRunDuration(duration.Seconds())
	workerMetrics.RecordPagesProcessed(len(results))
	workerMetrics.RecordLastSuccess()

	logger.Info("audit run completed",
		slog.Int("audited", len(results)),
		slog.Int("passed", passed),
		slog.Int("failed", failed),
		slog.Duration("duration", duration))
}
