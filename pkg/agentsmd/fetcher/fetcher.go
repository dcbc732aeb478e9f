package fetcher

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"aumos-oss/agentsmd/pkg/agentsmd/parser"
	"aumos-oss/agentsmd/pkg/config"
	"aumos-oss/agentsmd/pkg/telemetry/logging"
	"aumos-oss/agentsmd/pkg/telemetry/metrics"
	"aumos-oss/agentsmd/pkg/telemetry/tracing"

	"github.com/google/uuid"
)

// Candidate locations, probed in order.
const (
	LocationRoot      = "root"
	LocationWellKnown = "well_known"
)

// Attempt outcomes, used as metric labels and span attributes.
const (
	OutcomeFound      = "found"
	OutcomeNotFound   = "not_found"
	OutcomeBadStatus  = "bad_status"
	OutcomeTooLarge   = "too_large"
	OutcomeDowngraded = "downgraded"
	OutcomeTimeout    = "timeout"
	OutcomeError      = "error"
)

// Config controls how AGENTS.md documents are retrieved.
type Config struct {
	// EnforceHTTPS rejects non-https base URLs and redirects that leave https.
	// Turning it off also disables certificate verification on the default
	// client and is meant for local testing only.
	EnforceHTTPS bool

	// Timeout bounds each candidate request, body included.
	Timeout time.Duration

	// MaxSizeBytes is the largest document accepted.
	MaxSizeBytes int64

	// UserAgent is sent with every request.
	UserAgent string
}

// DefaultConfig returns the standard fetch settings.
func DefaultConfig() Config {
	return Config{
		EnforceHTTPS: true,
		Timeout:      config.DefaultFetchTimeout,
		MaxSizeBytes: config.DefaultFetchMaxSizeBytes,
		UserAgent:    config.DefaultFetchUserAgent,
	}
}

// FromConfig converts the fetch section of the application config.
func FromConfig(cfg config.FetchConfig) Config {
	return Config{
		EnforceHTTPS: cfg.EnforceHTTPS,
		Timeout:      cfg.Timeout,
		MaxSizeBytes: cfg.MaxSizeBytes,
		UserAgent:    cfg.UserAgent,
	}
}

// Result is a located AGENTS.md document.
type Result struct {
	// URL is the candidate URL that served the document.
	URL string

	// FinalURL is the URL after redirects.
	FinalURL string

	// Location is LocationRoot or LocationWellKnown.
	Location string

	// Content is the raw document.
	Content string

	// Parse is the parse result for Content.
	Parse *parser.ParseResult

	// RequestID correlates logs and spans for this fetch.
	RequestID string

	FetchedAt time.Time
}

// Fetcher retrieves AGENTS.md documents over HTTP. It is safe for concurrent
// use.
type Fetcher struct {
	cfg     Config
	client  *http.Client
	parser  *parser.Parser
	logger  *logging.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	now     func() time.Time
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithLogger sets the logger for per-attempt debug logs.
func WithLogger(logger *logging.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(f *Fetcher) {
		f.metrics = collector
	}
}

// WithTracer sets the tracer.
func WithTracer(tracer *tracing.Tracer) Option {
	return func(f *Fetcher) {
		f.tracer = tracer
	}
}

// New creates a Fetcher. Zero-valued fields of cfg fall back to the defaults,
// except EnforceHTTPS which is taken as given.
func New(cfg Config, opts ...Option) *Fetcher {
	defaults := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.MaxSizeBytes <= 0 {
		cfg.MaxSizeBytes = defaults.MaxSizeBytes
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}

	f := &Fetcher{
		cfg:    cfg,
		parser: parser.NewParser().WithMaxSize(cfg.MaxSizeBytes),
		logger: logging.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = defaultClient(cfg)
	}
	return f
}

func defaultClient(cfg Config) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !cfg.EnforceHTTPS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in for local testing
	}
	return &http.Client{Transport: transport}
}

// Config returns the effective configuration.
func (f *Fetcher) Config() Config {
	return f.cfg
}

// Fetch locates and parses the AGENTS.md document published under baseURL.
// It returns (nil, nil) when neither candidate location serves a document.
// A document that fails to parse is still returned as an unsuccessful result.
func (f *Fetcher) Fetch(ctx context.Context, baseURL string) (*parser.ParseResult, error) {
	result, err := f.FetchDetailed(ctx, baseURL)
	if err != nil || result == nil {
		return nil, err
	}
	return result.Parse, nil
}

// FetchDetailed is like Fetch but also reports where the document was found
// and its raw content.
func (f *Fetcher) FetchDetailed(ctx context.Context, baseURL string) (*Result, error) {
	normalized := strings.TrimRight(baseURL, "/")

	if f.cfg.EnforceHTTPS && !strings.HasPrefix(normalized, "https://") {
		return nil, &FetchError{URL: baseURL, Err: ErrInsecureURL}
	}

	requestID := uuid.NewString()
	ctx = logging.WithRequestID(ctx, requestID)
	ctx = logging.WithSite(ctx, normalized)

	ctx, span := f.tracer.Start(ctx, "agentsmd.fetch")
	defer span.End()

	for _, c := range candidates(normalized) {
		content, finalURL, err := f.attempt(ctx, requestID, c)
		if err != nil {
			tracing.SetError(span, err)
			tracing.SetStatus(span, err)
			return nil, &FetchError{URL: c.url, Err: err}
		}
		if finalURL == "" {
			continue
		}

		start := f.now()
		parsed := f.parser.Parse(content)
		f.metrics.RecordParse(parsed.Success, parsed.WarningSections(), f.now().Sub(start))
		tracing.SetParseAttributes(span, parsed.Success, len(parsed.Warnings))
		tracing.SetStatus(span, nil)

		return &Result{
			URL:       c.url,
			FinalURL:  finalURL,
			Location:  c.location,
			Content:   content,
			Parse:     parsed,
			RequestID: requestID,
			FetchedAt: start,
		}, nil
	}

	f.logger.DebugContext(ctx, "no AGENTS.md found")
	tracing.SetOutcome(span, OutcomeNotFound)
	tracing.SetStatus(span, nil)
	return nil, nil
}

type candidate struct {
	url      string
	location string
}

func candidates(base string) []candidate {
	return []candidate{
		{url: base + "/AGENTS.md", location: LocationRoot},
		{url: base + "/.well-known/agents.md", location: LocationWellKnown},
	}
}

// attempt requests one candidate URL. A non-empty finalURL means a document
// was found. Conditions that mean "not here" return empty strings and a nil
// error.
func (f *Fetcher) attempt(ctx context.Context, requestID string, c candidate) (content, finalURL string, err error) {
	start := f.now()
	ctx = logging.WithURL(ctx, c.url)

	ctx, span := f.tracer.Start(ctx, "agentsmd.fetch.attempt")
	defer span.End()
	tracing.SetFetchAttributes(span, requestID, c.url, c.location)

	outcome, status, size := OutcomeError, 0, 0
	defer func() {
		f.metrics.RecordFetchAttempt(c.location, outcome, f.now().Sub(start), size)
		tracing.SetOutcome(span, outcome)
		tracing.SetStatus(span, err)
		f.logger.DebugContext(ctx, "fetch attempt",
			"location", c.location,
			"outcome", outcome,
			"status", status,
			"bytes", size,
			"duration", f.now().Sub(start),
		)
	}()

	attemptCtx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	tracing.Inject(ctx, req.Header)

	resp, err := f.client.Do(req)
	if err != nil {
		if f.timedOut(ctx, err) {
			outcome = OutcomeTimeout
			return "", "", nil
		}
		return "", "", err
	}
	defer resp.Body.Close()

	status = resp.StatusCode
	final := resp.Request.URL

	switch {
	case f.cfg.EnforceHTTPS && final.Scheme != "https":
		outcome = OutcomeDowngraded
		return "", "", nil
	case resp.StatusCode == http.StatusNotFound:
		outcome = OutcomeNotFound
		return "", "", nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		outcome = OutcomeBadStatus
		return "", "", nil
	case resp.ContentLength > f.cfg.MaxSizeBytes:
		outcome = OutcomeTooLarge
		return "", "", nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxSizeBytes+1))
	size = len(body)
	if err != nil {
		if f.timedOut(ctx, err) {
			outcome = OutcomeTimeout
			return "", "", nil
		}
		return "", "", fmt.Errorf("failed to read body: %w", err)
	}
	tracing.SetResponseAttributes(span, status, size)

	if int64(len(body)) > f.cfg.MaxSizeBytes {
		outcome = OutcomeTooLarge
		return "", "", nil
	}
	if !utf8.Valid(body) {
		return "", "", errors.New("response body is not valid UTF-8")
	}

	outcome = OutcomeFound
	return string(body), final.String(), nil
}

// timedOut reports whether err came from the per-attempt deadline rather than
// from cancellation of the caller's context.
func (f *Fetcher) timedOut(parent context.Context, err error) bool {
	if parent.Err() != nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Fetch retrieves baseURL's AGENTS.md with the default configuration.
func Fetch(ctx context.Context, baseURL string) (*parser.ParseResult, error) {
	return New(DefaultConfig()).Fetch(ctx, baseURL)
}
