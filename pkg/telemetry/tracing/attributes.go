package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys. Custom keys use the "agentsmd.*" namespace.
const (
	AttrSite      = "agentsmd.site"
	AttrURL       = "url.full"
	AttrLocation  = "agentsmd.location"
	AttrOutcome   = "agentsmd.outcome"
	AttrRequestID = "agentsmd.request_id"
	AttrRunID     = "agentsmd.run_id"

	AttrStatusCode = "http.response.status_code"
	AttrSizeBytes  = "agentsmd.size_bytes"

	AttrParseSuccess  = "agentsmd.parse.success"
	AttrParseWarnings = "agentsmd.parse.warnings"
	AttrDigest        = "agentsmd.digest"
	AttrChanged       = "agentsmd.changed"

	AttrErrorMessage = "error.message"
)

// SetFetchAttributes sets attributes describing a candidate URL request.
func SetFetchAttributes(span trace.Span, requestID, url, location string) {
	span.SetAttributes(
		attribute.String(AttrRequestID, requestID),
		attribute.String(AttrURL, url),
		attribute.String(AttrLocation, location),
	)
}

// SetResponseAttributes records the HTTP status and body size.
func SetResponseAttributes(span trace.Span, statusCode, size int) {
	span.SetAttributes(
		attribute.Int(AttrStatusCode, statusCode),
		attribute.Int(AttrSizeBytes, size),
	)
}

// SetOutcome records how a fetch attempt ended.
func SetOutcome(span trace.Span, outcome string) {
	span.SetAttributes(attribute.String(AttrOutcome, outcome))
}

// SetParseAttributes records the result of parsing a fetched document.
func SetParseAttributes(span trace.Span, success bool, warnings int) {
	span.SetAttributes(
		attribute.Bool(AttrParseSuccess, success),
		attribute.Int(AttrParseWarnings, warnings),
	)
}

// SetSiteCheckAttributes records a monitor site check.
func SetSiteCheckAttributes(span trace.Span, runID, site, digest string, changed bool) {
	span.SetAttributes(
		attribute.String(AttrRunID, runID),
		attribute.String(AttrSite, site),
		attribute.String(AttrDigest, digest),
		attribute.Bool(AttrChanged, changed),
	)
}

// AddEvent adds an event to the span.
func AddEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
