// Package metrics provides Prometheus metrics for parsing, validation,
// fetching, monitoring and history storage.
//
// # Metrics
//
//   - Parse: agentsmd_parse_total{result}, agentsmd_parse_warnings_total{section},
//     agentsmd_parse_duration_seconds
//   - Validation: agentsmd_validations_total{result}, agentsmd_validation_errors_total
//   - Fetch: agentsmd_fetch_attempts_total{location,outcome},
//     agentsmd_fetch_duration_seconds{location}, agentsmd_fetch_size_bytes
//   - Monitor: agentsmd_monitor_runs_total{status}, agentsmd_monitor_run_duration_seconds,
//     agentsmd_monitor_site_checks_total{site,outcome},
//     agentsmd_monitor_policy_changes_total{site}, agentsmd_monitor_last_run_timestamp_seconds
//   - History: agentsmd_history_snapshots_total{backend}, agentsmd_history_pruned_total{backend}
//
// # Usage
//
//	collector := metrics.NewCollector(cfg.Telemetry.Metrics, nil)
//	collector.RecordFetchAttempt("root", "found", 120*time.Millisecond, 2048)
//	go collector.Serve(ctx)
//
// Recording is a no-op when metrics are disabled or the collector is nil.
// The site label is capped at 1000 distinct values; further sites are
// aggregated under "other".
package metrics
