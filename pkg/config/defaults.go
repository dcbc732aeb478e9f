package config

import "time"

// Default values for configuration fields.
const (
	// Fetch defaults
	DefaultFetchEnforceHTTPS = true
	DefaultFetchTimeout      = 10 * time.Second
	DefaultFetchMaxSizeBytes = int64(1_048_576)
	DefaultFetchUserAgent    = "agents-md-parser/0.1.0 (https://github.com/aumos-oss/agents-md-spec)"

	// Monitor defaults
	DefaultMonitorSchedule          = "*/30 * * * *"
	DefaultMonitorRequestsPerSecond = 1.0
	DefaultMonitorBurst             = 1

	// History defaults
	DefaultHistoryBackend           = "sqlite"
	DefaultHistorySQLitePath        = "data/agentsmd.db"
	DefaultHistorySQLiteBusyTimeout = 5 * time.Second
	DefaultHistorySQLiteMaxOpen     = 4
	DefaultHistoryRetentionDays     = 90

	// Telemetry defaults
	DefaultLoggingLevel         = "info"
	DefaultLoggingFormat        = "text"
	DefaultLoggingRedact        = true
	DefaultMetricsEnabled       = false
	DefaultMetricsListenAddress = "127.0.0.1:9464"
	DefaultMetricsPath          = "/metrics"
	DefaultMetricsNamespace     = "agentsmd"
	DefaultTracingEnabled       = false
	DefaultTracingSampleRatio   = 1.0
	DefaultTracingServiceName   = "agentsmd"
)

// DefaultConfig returns a configuration with every field at its default.
// Fields whose zero value is meaningful (enforce_https, redact, retention_days)
// get their defaults only here.
func DefaultConfig() *Config {
	cfg := &Config{
		Fetch: FetchConfig{
			EnforceHTTPS: DefaultFetchEnforceHTTPS,
		},
		History: HistoryConfig{
			RetentionDays: DefaultHistoryRetentionDays,
		},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{
				Redact: DefaultLoggingRedact,
			},
			Metrics: MetricsConfig{
				Enabled: DefaultMetricsEnabled,
			},
			Tracing: TracingConfig{
				Enabled:     DefaultTracingEnabled,
				SampleRatio: DefaultTracingSampleRatio,
			},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with their defaults.
func ApplyDefaults(cfg *Config) {
	// Fetch defaults
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = DefaultFetchTimeout
	}
	if cfg.Fetch.MaxSizeBytes == 0 {
		cfg.Fetch.MaxSizeBytes = DefaultFetchMaxSizeBytes
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = DefaultFetchUserAgent
	}

	// Monitor defaults
	if cfg.Monitor.Schedule == "" {
		cfg.Monitor.Schedule = DefaultMonitorSchedule
	}
	if cfg.Monitor.RequestsPerSecond == 0 {
		cfg.Monitor.RequestsPerSecond = DefaultMonitorRequestsPerSecond
	}
	if cfg.Monitor.Burst == 0 {
		cfg.Monitor.Burst = DefaultMonitorBurst
	}

	// History defaults
	if cfg.History.Backend == "" {
		cfg.History.Backend = DefaultHistoryBackend
	}
	if cfg.History.SQLite.Path == "" {
		cfg.History.SQLite.Path = DefaultHistorySQLitePath
	}
	if cfg.History.SQLite.BusyTimeout == 0 {
		cfg.History.SQLite.BusyTimeout = DefaultHistorySQLiteBusyTimeout
	}
	if cfg.History.SQLite.MaxOpenConns == 0 {
		cfg.History.SQLite.MaxOpenConns = DefaultHistorySQLiteMaxOpen
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingServiceName
	}
}
