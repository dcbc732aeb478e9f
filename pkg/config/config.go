package config

import "time"

// Config is the root configuration structure for the agentsmd toolkit.
type Config struct {
	// Fetch controls how AGENTS.md files are retrieved over HTTP.
	Fetch FetchConfig `yaml:"fetch"`

	// Monitor lists the sites to watch and how often to re-fetch them.
	Monitor MonitorConfig `yaml:"monitor"`

	// History configures the snapshot store used by fetch --record and monitor.
	History HistoryConfig `yaml:"history"`

	// Telemetry contains logging, metrics, and tracing configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// FetchConfig contains configuration for the HTTP fetcher.
type FetchConfig struct {
	// EnforceHTTPS rejects non-https base URLs and treats https-to-http
	// redirects as not found. Disable only for local testing.
	// Default: true
	EnforceHTTPS bool `yaml:"enforce_https"`

	// Timeout bounds each attempt (one per candidate location).
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// MaxSizeBytes is the largest document accepted. Larger responses are
	// treated as not found.
	// Default: 1048576 (1 MiB)
	MaxSizeBytes int64 `yaml:"max_size_bytes"`

	// UserAgent is sent with every request.
	// Default: "agents-md-parser/0.1.0 (https://github.com/aumos-oss/agents-md-spec)"
	UserAgent string `yaml:"user_agent"`
}

// MonitorConfig contains configuration for scheduled re-fetching.
type MonitorConfig struct {
	// Sites are base URLs (e.g. "https://example.com") to poll.
	Sites []string `yaml:"sites"`

	// Schedule is a standard five-field cron expression.
	// Default: "*/30 * * * *"
	Schedule string `yaml:"schedule"`

	// RequestsPerSecond paces fetches across sites within one run.
	// Default: 1.0
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// Burst is the rate limiter burst size.
	// Default: 1
	Burst int `yaml:"burst"`
}

// HistoryConfig contains configuration for the snapshot store.
type HistoryConfig struct {
	// Backend selects the storage implementation.
	// Options: "sqlite", "memory"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite-specific settings.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// RetentionDays is how long snapshots are kept. Zero keeps them forever.
	// Default: 90
	RetentionDays int `yaml:"retention_days"`
}

// SQLiteConfig contains SQLite backend configuration.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/agentsmd.db"
	Path string `yaml:"path"`

	// BusyTimeout is how long a writer waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// MaxOpenConns limits open connections.
	// Default: 4
	MaxOpenConns int `yaml:"max_open_conns"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// Redact masks e-mail addresses and bearer tokens in log fields.
	// Default: true
	Redact bool `yaml:"redact"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled serves metrics while the monitor runs.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the metrics HTTP listener.
	// Default: "127.0.0.1:9464"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path of the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace prefixes every metric name.
	// Default: "agentsmd"
	Namespace string `yaml:"namespace"`
}

// TracingConfig contains OpenTelemetry tracing configuration.
type TracingConfig struct {
	// Enabled controls whether spans are exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector address (e.g. "localhost:4317").
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS to the collector.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// ServiceName is the service.name resource attribute.
	// Default: "agentsmd"
	ServiceName string `yaml:"service_name"`
}
