package logging

import "context"

// Context keys for common log fields.
type contextKey string

const (
	// RequestIDKey is the context key for fetch request IDs.
	RequestIDKey contextKey = "request_id"

	// RunIDKey is the context key for monitor run IDs.
	RunIDKey contextKey = "run_id"

	// SiteKey is the context key for the site being processed.
	SiteKey contextKey = "site"

	// URLKey is the context key for the URL being fetched.
	URLKey contextKey = "url"

	// TraceIDKey is the context key for trace IDs.
	TraceIDKey contextKey = "trace_id"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	return stringValue(ctx, RequestIDKey)
}

// WithRunID adds a monitor run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the monitor run ID from the context.
func GetRunID(ctx context.Context) string {
	return stringValue(ctx, RunIDKey)
}

// WithSite adds a site to the context.
func WithSite(ctx context.Context, site string) context.Context {
	return context.WithValue(ctx, SiteKey, site)
}

// GetSite retrieves the site from the context.
func GetSite(ctx context.Context) string {
	return stringValue(ctx, SiteKey)
}

// WithURL adds a URL to the context.
func WithURL(ctx context.Context, url string) context.Context {
	return context.WithValue(ctx, URLKey, url)
}

// GetURL retrieves the URL from the context.
func GetURL(ctx context.Context) string {
	return stringValue(ctx, URLKey)
}

// WithTraceID adds a trace ID to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
func GetTraceID(ctx context.Context) string {
	return stringValue(ctx, TraceIDKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	for _, key := range []contextKey{RunIDKey, RequestIDKey, SiteKey, URLKey, TraceIDKey} {
		if v := stringValue(ctx, key); v != "" {
			fields = append(fields, string(key), v)
		}
	}

	return fields
}
