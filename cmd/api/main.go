package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	hhttp "readability-audit/internal/handler/http"
	"readability-audit/internal/handler/http/analyze"
	"readability-audit/internal/handler/http/requestid"
	"readability-audit/internal/infra/feed"
	"readability-audit/internal/infra/fetcher"
	"readability-audit/internal/observability/logging"
	"readability-audit/internal/observability/slo"
	"readability-audit/internal/observability/tracing"
	"readability-audit/internal/pkg/config"
	auditUC "readability-audit/internal/usecase/audit"
	"readability-audit/pkg/readability"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	version := getVersion()
	components, err := setupServer(logger)
	if err != nil {
		logger.Error("server setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	runServer(logger, components, version)
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// serverComponents holds everything needed to run and shut down the server.
type serverComponents struct {
	handler  http.Handler
	analyzer *readability.Analyzer
	addr     string
	timeout  time.Duration
}

// setupServer builds the analyzer, audit service, routes and middleware
// chain from environment configuration.
func setupServer(logger *slog.Logger) (*serverComponents, error) {
	addr := config.LoadEnvString("API_ADDR", ":8080")

	result := config.LoadEnvDuration("API_REQUEST_TIMEOUT", 30*time.Second, func(d time.Duration) error {
		if d < time.Second || d > 5*time.Minute {
			return fmt.Errorf("must be between 1s and 5m, got %v", d)
		}
		return nil
	})
	logConfigWarnings(logger, "API_REQUEST_TIMEOUT", result)
	requestTimeout := result.Value.(time.Duration)

	result = config.LoadEnvInt("AUDIT_PARALLELISM", 5, func(v int) error {
		if v < 1 || v > 50 {
			return fmt.Errorf("must be between 1 and 50, got %d", v)
		}
		return nil
	})
	logConfigWarnings(logger, "AUDIT_PARALLELISM", result)
	parallelism := result.Value.(int)

	result = config.LoadEnvInt("AUDIT_RESULT_CAPACITY", analyze.DefaultStoreCapacity, func(v int) error {
		if v < 1 || v > 100000 {
			return fmt.Errorf("must be between 1 and 100000, got %d", v)
		}
		return nil
	})
	logConfigWarnings(logger, "AUDIT_RESULT_CAPACITY", result)
	resultCapacity := result.Value.(int)

	// Analyzer with Prometheus-backed engine metrics. The engine keeps its
	// own registry; it is merged into /metrics below.
	engineMetrics := readability.NewPrometheusMetrics()
	analyzerCfg := readability.DefaultConfig()
	analyzerCfg.Metrics = engineMetrics
	analyzer := readability.New(analyzerCfg)
	logger.Info("analyzer initialized",
		slog.Int("cache_size", analyzerCfg.CacheSize),
		slog.Int("complex_threshold", analyzerCfg.ComplexThreshold),
		slog.Int("languages", len(readability.SupportedLanguages())))

	fetchConfig, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("load content fetch configuration: %w", err)
	}
	pageFetcher := fetcher.NewPageFetcher(fetchConfig)
	logger.Info("page fetcher initialized",
		slog.Duration("timeout", fetchConfig.Timeout),
		slog.Int64("max_body_size", fetchConfig.MaxBodySize),
		slog.Bool("deny_private_ips", fetchConfig.DenyPrivateIPs))

	feedLister := feed.NewRSSLister(nil)

	svc := auditUC.NewService(pageFetcher, feedLister, analyzer, logger, auditUC.Config{
		Parallelism: parallelism,
	})

	store := analyze.NewResultStore(resultCapacity)

	mux := setupRoutes(svc, store, analyzer, engineMetrics, getVersion())
	handler := applyMiddleware(logger, mux, requestTimeout)

	return &serverComponents{
		handler:  handler,
		analyzer: analyzer,
		addr:     addr,
		timeout:  requestTimeout,
	}, nil
}

// logConfigWarnings logs any fallback warnings from configuration loading.
func logConfigWarnings(logger *slog.Logger, key string, result config.ConfigLoadResult) {
	for _, warning := range result.Warnings {
		logger.Warn("configuration fallback applied",
			slog.String("key", key),
			slog.String("warning", warning))
	}
}

// setupRoutes registers all HTTP routes.
func setupRoutes(
	svc *auditUC.Service,
	store *analyze.ResultStore,
	analyzer *readability.Analyzer,
	engineMetrics *readability.PrometheusMetrics,
	version string,
) *http.ServeMux {
	mux := http.NewServeMux()

	analyze.Register(mux, svc, store)

	mux.Handle("/health", &hhttp.HealthHandler{Analyzer: analyzer, Version: version})
	mux.Handle("/health/ready", &hhttp.ReadyHandler{Analyzer: analyzer})
	mux.Handle("/health/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler(engineMetrics.Registry()))

	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost first): request ID, rate limit, recovery, logging,
// tracing, input validation, timeout, metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler, requestTimeout time.Duration) http.Handler {
	result := config.LoadEnvInt("API_RATE_LIMIT", 120, func(v int) error {
		if v < 1 {
			return fmt.Errorf("must be positive, got %d", v)
		}
		return nil
	})
	logConfigWarnings(logger, "API_RATE_LIMIT", result)
	rateLimiter := hhttp.NewRateLimiter(result.Value.(int), time.Minute)

	chain := handler

	// Applied in reverse order (innermost to outermost).
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Timeout(requestTimeout)(chain)
	chain = hhttp.InputValidation()(chain)
	chain = tracing.Middleware(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = rateLimiter.Limit(chain)
	chain = requestid.Middleware(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, components *serverComponents, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Availability tracking updates its gauges once a minute.
	slo.StartTracking(ctx, slo.DefaultUpdateInterval)

	srv := &http.Server{
		Addr:              components.addr,
		Handler:           components.handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", components.addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	// Stop background goroutines before draining connections.
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
