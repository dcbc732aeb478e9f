package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"aumos-oss/agentsmd/pkg/agentsmd/fetcher"
	"aumos-oss/agentsmd/pkg/history"
	"aumos-oss/agentsmd/pkg/telemetry/metrics"
	"aumos-oss/agentsmd/pkg/telemetry/tracing"
)

// telemetry bundles the metrics collector and tracer built from appConfig.
type telemetry struct {
	metrics *metrics.Collector
	tracer  *tracing.Tracer
}

func newTelemetry() (*telemetry, error) {
	tracer, err := tracing.New(appConfig.Telemetry.Tracing, Version)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	return &telemetry{
		metrics: metrics.NewCollector(appConfig.Telemetry.Metrics, prometheus.NewRegistry()),
		tracer:  tracer,
	}, nil
}

// shutdown flushes pending spans.
func (t *telemetry) shutdown(ctx context.Context) {
	if err := t.tracer.Shutdown(ctx); err != nil {
		logger.Warn("failed to shut down tracer", "error", err)
	}
}

// newFetcher builds a fetcher from appConfig with cfg adjustments applied.
func (t *telemetry) newFetcher(adjust func(*fetcher.Config)) *fetcher.Fetcher {
	cfg := fetcher.FromConfig(appConfig.Fetch)
	if adjust != nil {
		adjust(&cfg)
	}
	return fetcher.New(cfg,
		fetcher.WithLogger(logger),
		fetcher.WithMetrics(t.metrics),
		fetcher.WithTracer(t.tracer),
	)
}

// openStore opens the configured history store.
func openStore(ctx context.Context) (history.Store, error) {
	store, err := history.Open(ctx, appConfig.History, logger.Slog())
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}
	return store, nil
}
