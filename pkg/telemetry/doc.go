// Package telemetry groups the observability packages used by agentsmd.
//
// # Components
//
//   - logging: structured slog logging with redaction of contact details
//   - metrics: Prometheus metrics for parsing, fetching and monitoring
//   - tracing: OpenTelemetry tracing exported over OTLP gRPC
//
// # Usage
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging))
//	collector := metrics.NewCollector(cfg.Telemetry.Metrics, nil)
//	tracer, err := tracing.New(cfg.Telemetry.Tracing, version)
//	defer tracer.Shutdown(context.Background())
//
// All three are optional for library callers: the fetcher and monitor accept
// nil metrics and tracers and fall back to a discarding logger.
package telemetry
