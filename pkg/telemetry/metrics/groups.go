package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ParseMetrics tracks AGENTS.md parsing.
//
// Metrics:
//   - agentsmd_parse_total: parses by result
//   - agentsmd_parse_warnings_total: warnings by section
//   - agentsmd_parse_duration_seconds: parse latency
type ParseMetrics struct {
	parsesTotal   *prometheus.CounterVec
	warningsTotal *prometheus.CounterVec
	duration      prometheus.Histogram
}

// NewParseMetrics creates and registers parse metrics.
func NewParseMetrics(namespace string, registry *prometheus.Registry) *ParseMetrics {
	pm := &ParseMetrics{
		parsesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "parse_total",
				Help:      "Total number of AGENTS.md documents parsed",
			},
			[]string{"result"},
		),
		warningsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "parse_warnings_total",
				Help:      "Total number of parse warnings by section",
			},
			[]string{"section"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "parse_duration_seconds",
				Help:      "Duration of AGENTS.md parsing in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8), // 10µs to ~160ms
			},
		),
	}

	registry.MustRegister(pm.parsesTotal, pm.warningsTotal, pm.duration)
	return pm
}

// Record records a single parse.
func (pm *ParseMetrics) Record(success bool, warningSections []string, duration time.Duration) {
	pm.parsesTotal.WithLabelValues(resultLabel(success, "success", "failure")).Inc()
	for _, section := range warningSections {
		pm.warningsTotal.WithLabelValues(section).Inc()
	}
	pm.duration.Observe(duration.Seconds())
}

// ValidationMetrics tracks policy validation.
type ValidationMetrics struct {
	validationsTotal *prometheus.CounterVec
	problemsTotal    prometheus.Counter
}

// NewValidationMetrics creates and registers validation metrics.
func NewValidationMetrics(namespace string, registry *prometheus.Registry) *ValidationMetrics {
	vm := &ValidationMetrics{
		validationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validations_total",
				Help:      "Total number of policy validations by result",
			},
			[]string{"result"},
		),
		problemsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_errors_total",
				Help:      "Total number of validation errors reported",
			},
		),
	}

	registry.MustRegister(vm.validationsTotal, vm.problemsTotal)
	return vm
}

// Record records a single validation.
func (vm *ValidationMetrics) Record(valid bool, problems int) {
	vm.validationsTotal.WithLabelValues(resultLabel(valid, "valid", "invalid")).Inc()
	if problems > 0 {
		vm.problemsTotal.Add(float64(problems))
	}
}

// FetchMetrics tracks remote AGENTS.md retrieval.
//
// Metrics:
//   - agentsmd_fetch_attempts_total: candidate URL requests by location and outcome
//   - agentsmd_fetch_duration_seconds: candidate URL latency by location
//   - agentsmd_fetch_size_bytes: size of bodies read
type FetchMetrics struct {
	attemptsTotal *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	sizeBytes     prometheus.Histogram
}

// NewFetchMetrics creates and registers fetch metrics.
func NewFetchMetrics(namespace string, registry *prometheus.Registry) *FetchMetrics {
	fm := &FetchMetrics{
		attemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fetch_attempts_total",
				Help:      "Total number of AGENTS.md fetch attempts",
			},
			[]string{"location", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "fetch_duration_seconds",
				Help:      "Duration of AGENTS.md fetch attempts in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"location"},
		),
		sizeBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "fetch_size_bytes",
				Help:      "Size of fetched AGENTS.md bodies in bytes",
				Buckets:   prometheus.ExponentialBuckets(256, 4, 7), // 256B to 1MiB
			},
		),
	}

	registry.MustRegister(fm.attemptsTotal, fm.duration, fm.sizeBytes)
	return fm
}

// RecordAttempt records a single candidate URL request.
func (fm *FetchMetrics) RecordAttempt(location, outcome string, duration time.Duration, size int) {
	fm.attemptsTotal.WithLabelValues(location, outcome).Inc()
	fm.duration.WithLabelValues(location).Observe(duration.Seconds())
	if size > 0 {
		fm.sizeBytes.Observe(float64(size))
	}
}

// MonitorMetrics tracks scheduled site monitoring.
type MonitorMetrics struct {
	runsTotal    *prometheus.CounterVec
	runDuration  prometheus.Histogram
	checksTotal  *prometheus.CounterVec
	changesTotal *prometheus.CounterVec
	lastRun      prometheus.Gauge
}

// NewMonitorMetrics creates and registers monitor metrics.
func NewMonitorMetrics(namespace string, registry *prometheus.Registry) *MonitorMetrics {
	mm := &MonitorMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "monitor_runs_total",
				Help:      "Total number of monitor runs by status",
			},
			[]string{"status"},
		),
		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "monitor_run_duration_seconds",
				Help:      "Duration of monitor runs in seconds",
				Buckets:   []float64{0.5, 1, 5, 15, 30, 60, 300, 900},
			},
		),
		checksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "monitor_site_checks_total",
				Help:      "Total number of site checks by outcome",
			},
			[]string{"site", "outcome"},
		),
		changesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "monitor_policy_changes_total",
				Help:      "Total number of detected AGENTS.md policy changes",
			},
			[]string{"site"},
		),
		lastRun: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "monitor_last_run_timestamp_seconds",
				Help:      "Unix time of the last completed monitor run",
			},
		),
	}

	registry.MustRegister(mm.runsTotal, mm.runDuration, mm.checksTotal, mm.changesTotal, mm.lastRun)
	return mm
}

// RecordRun records a completed run.
func (mm *MonitorMetrics) RecordRun(status string, duration time.Duration) {
	mm.runsTotal.WithLabelValues(status).Inc()
	mm.runDuration.Observe(duration.Seconds())
	mm.lastRun.SetToCurrentTime()
}

// RecordCheck records a site check.
func (mm *MonitorMetrics) RecordCheck(site, outcome string) {
	mm.checksTotal.WithLabelValues(site, outcome).Inc()
}

// RecordChange records a detected policy change.
func (mm *MonitorMetrics) RecordChange(site string) {
	mm.changesTotal.WithLabelValues(site).Inc()
}

// HistoryMetrics tracks snapshot storage.
type HistoryMetrics struct {
	snapshotsTotal *prometheus.CounterVec
	prunedTotal    *prometheus.CounterVec
}

// NewHistoryMetrics creates and registers history metrics.
func NewHistoryMetrics(namespace string, registry *prometheus.Registry) *HistoryMetrics {
	hm := &HistoryMetrics{
		snapshotsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "history_snapshots_total",
				Help:      "Total number of stored history snapshots",
			},
			[]string{"backend"},
		),
		prunedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "history_pruned_total",
				Help:      "Total number of snapshots removed by retention",
			},
			[]string{"backend"},
		),
	}

	registry.MustRegister(hm.snapshotsTotal, hm.prunedTotal)
	return hm
}

// RecordSnapshot records a stored snapshot.
func (hm *HistoryMetrics) RecordSnapshot(backend string) {
	hm.snapshotsTotal.WithLabelValues(backend).Inc()
}

// RecordPruned records pruned snapshots.
func (hm *HistoryMetrics) RecordPruned(backend string, count int64) {
	if count > 0 {
		hm.prunedTotal.WithLabelValues(backend).Add(float64(count))
	}
}

func resultLabel(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
