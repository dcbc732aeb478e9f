package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"aumos-oss/agentsmd/pkg/agentsmd/fetcher"
	"aumos-oss/agentsmd/pkg/config"
	"aumos-oss/agentsmd/pkg/history"
	"aumos-oss/agentsmd/pkg/telemetry/metrics"
	"aumos-oss/agentsmd/pkg/telemetry/tracing"

	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"
)

// Fetcher retrieves a site's AGENTS.md. *fetcher.Fetcher satisfies it.
type Fetcher interface {
	FetchDetailed(ctx context.Context, baseURL string) (*fetcher.Result, error)
}

// ErrRunInProgress is returned by RunOnce when another run has not finished.
var ErrRunInProgress = errors.New("monitor run already in progress")

// Config controls which sites are checked and how often.
type Config struct {
	// Sites are base URLs such as "https://example.com".
	Sites []string

	// Schedule is a standard cron expression.
	Schedule string

	// RequestsPerSecond paces site checks within a run. Zero or less disables
	// pacing.
	RequestsPerSecond float64

	// Burst is the number of checks allowed back to back.
	Burst int

	// RetentionDays prunes older snapshots after each run. Zero keeps all.
	RetentionDays int
}

// FromConfig extracts the monitor settings from the application config.
func FromConfig(cfg *config.Config) Config {
	return Config{
		Sites:             cfg.Monitor.Sites,
		Schedule:          cfg.Monitor.Schedule,
		RequestsPerSecond: cfg.Monitor.RequestsPerSecond,
		Burst:             cfg.Monitor.Burst,
		RetentionDays:     cfg.History.RetentionDays,
	}
}

// Monitor periodically fetches a list of sites, records a history snapshot for
// each, and reports sites whose policy changed since the previous snapshot.
type Monitor struct {
	cfg     Config
	fetcher Fetcher
	store   history.Store
	limiter *rate.Limiter
	logger  *slog.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	now     func() time.Time

	runMu sync.Mutex // held for the duration of a run

	mu        sync.Mutex
	cron      *cron.Cron
	running   bool
	stopWatch func() bool // detaches the ctx.Done watcher registered by Start
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) {
		m.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(m *Monitor) {
		m.metrics = collector
	}
}

// WithTracer sets the tracer.
func WithTracer(tracer *tracing.Tracer) Option {
	return func(m *Monitor) {
		m.tracer = tracer
	}
}

// WithClock overrides the time source used for snapshots and retention.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) {
		m.now = now
	}
}

// New creates a Monitor. The schedule is validated here so that Start cannot
// fail on a bad expression.
func New(cfg Config, f Fetcher, store history.Store, opts ...Option) (*Monitor, error) {
	if f == nil {
		return nil, errors.New("fetcher is required")
	}
	if store == nil {
		return nil, errors.New("history store is required")
	}
	if cfg.Schedule == "" {
		cfg.Schedule = config.DefaultMonitorSchedule
	}
	if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
		return nil, fmt.Errorf("invalid cron schedule %q: %w", cfg.Schedule, err)
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	m := &Monitor{
		cfg:     cfg,
		fetcher: f,
		store:   store,
		limiter: rate.NewLimiter(limit, burst),
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("component", "monitor")

	return m, nil
}

// Start schedules runs on the configured cron expression until ctx is
// cancelled or Stop is called. Runs that would overlap a still-running one are
// skipped.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return errors.New("monitor already started")
	}

	m.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := m.cron.AddFunc(m.cfg.Schedule, func() {
		m.runScheduled(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule monitor: %w", err)
	}

	m.cron.Start()
	m.running = true

	m.logger.Info("monitor started",
		"schedule", m.cfg.Schedule,
		"sites", len(m.cfg.Sites),
		"retention_days", m.cfg.RetentionDays,
	)

	m.stopWatch = context.AfterFunc(ctx, m.Stop)

	return nil
}

// Run performs one run immediately, then runs on schedule until ctx is done.
func (m *Monitor) Run(ctx context.Context) error {
	m.runScheduled(ctx)

	if err := m.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	m.Stop()
	return nil
}

func (m *Monitor) runScheduled(ctx context.Context) {
	result, err := m.RunOnce(ctx)
	if err != nil {
		m.logger.Error("monitor run failed", "error", err)
		return
	}
	m.logger.Info("monitor run completed",
		"run_id", result.RunID,
		"sites", len(result.Sites),
		"changed", len(result.Changed()),
		"failed", result.Failed(),
		"pruned", result.Pruned,
		"duration", result.Finished.Sub(result.Started),
	)
}

// Stop stops the scheduler and waits for a running job to complete.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopWatch != nil {
		m.stopWatch()
		m.stopWatch = nil
	}
	if m.cron != nil && m.running {
		stopCtx := m.cron.Stop()
		<-stopCtx.Done()
		m.running = false
		m.logger.Info("monitor stopped")
	}
}

// IsRunning reports whether the scheduler is active.
func (m *Monitor) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// NextRun returns the next scheduled run, or nil when not started.
func (m *Monitor) NextRun() *time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cron == nil || !m.running {
		return nil
	}
	entries := m.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
