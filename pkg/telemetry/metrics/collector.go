package metrics

import (
	"sync"
	"time"

	"aumos-oss/agentsmd/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// otherSite is the site label used once the cardinality limit is reached.
const otherSite = "other"

// Collector is the entry point for all Prometheus metrics. It owns the registry
// and one metrics group per concern.
//
// A nil *Collector is valid and records nothing, so components can take an
// optional collector without guarding every call.
type Collector struct {
	config   config.MetricsConfig
	registry *prometheus.Registry

	parse      *ParseMetrics
	validation *ValidationMetrics
	fetch      *FetchMetrics
	monitor    *MonitorMetrics
	history    *HistoryMetrics

	// Site labels are bounded because monitored site lists come from config
	// but fetch targets come from user input.
	sites *CardinalityLimiter
}

// NewCollector creates a collector registered on registry. If registry is nil
// a fresh registry is created.
func NewCollector(cfg config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}

	return &Collector{
		config:     cfg,
		registry:   registry,
		parse:      NewParseMetrics(cfg.Namespace, registry),
		validation: NewValidationMetrics(cfg.Namespace, registry),
		fetch:      NewFetchMetrics(cfg.Namespace, registry),
		monitor:    NewMonitorMetrics(cfg.Namespace, registry),
		history:    NewHistoryMetrics(cfg.Namespace, registry),
		sites:      NewCardinalityLimiter(1000),
	}
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.Enabled
}

// site returns label unchanged while the limiter admits it.
func (c *Collector) site(label string) string {
	if c.sites.Allow(label) {
		return label
	}
	return otherSite
}

// RecordParse records one parse. warningSections holds the section of each
// warning produced.
func (c *Collector) RecordParse(success bool, warningSections []string, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.parse.Record(success, warningSections, duration)
}

// RecordValidation records one validation and the number of problems found.
func (c *Collector) RecordValidation(valid bool, problems int) {
	if !c.enabled() {
		return
	}
	c.validation.Record(valid, problems)
}

// RecordFetchAttempt records one candidate URL request.
//
// Parameters:
//   - location: "root" or "well_known"
//   - outcome: "found", "not_found", "too_large", "downgraded", "timeout", "error"
//   - duration: time until the outcome was known
//   - size: body size in bytes, 0 when no body was read
func (c *Collector) RecordFetchAttempt(location, outcome string, duration time.Duration, size int) {
	if !c.enabled() {
		return
	}
	c.fetch.RecordAttempt(location, outcome, duration, size)
}

// RecordMonitorRun records a completed monitor run.
func (c *Collector) RecordMonitorRun(status string, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.monitor.RecordRun(status, duration)
}

// RecordSiteCheck records the outcome of checking one monitored site.
func (c *Collector) RecordSiteCheck(site, outcome string) {
	if !c.enabled() {
		return
	}
	c.monitor.RecordCheck(c.site(site), outcome)
}

// RecordPolicyChange records a digest change for site.
func (c *Collector) RecordPolicyChange(site string) {
	if !c.enabled() {
		return
	}
	c.monitor.RecordChange(c.site(site))
}

// RecordSnapshot records a stored history snapshot.
func (c *Collector) RecordSnapshot(backend string) {
	if !c.enabled() {
		return
	}
	c.history.RecordSnapshot(backend)
}

// RecordPruned records snapshots removed by retention.
func (c *Collector) RecordPruned(backend string, count int64) {
	if !c.enabled() {
		return
	}
	c.history.RecordPruned(backend, count)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// CardinalityLimiter bounds the number of distinct values a label may take.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a limiter admitting at most maxCardinality
// distinct values.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether value is already tracked or can still be admitted.
func (cl *CardinalityLimiter) Allow(value string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[value]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[value]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[value] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
