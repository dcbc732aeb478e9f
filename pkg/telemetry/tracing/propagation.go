package tracing

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Propagator returns the configured text map propagator (W3C Trace Context
// and Baggage once a tracer has been created).
func Propagator() propagation.TextMapPropagator {
	return otel.GetTextMapPropagator()
}

// Inject writes the trace context from ctx into outgoing request headers so
// site operators can correlate agent requests with traces.
//
//	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
//	tracing.Inject(ctx, req.Header)
func Inject(ctx context.Context, headers http.Header) {
	Propagator().Inject(ctx, propagation.HeaderCarrier(headers))
}

// Extract reads trace context from headers.
func Extract(ctx context.Context, headers http.Header) context.Context {
	return Propagator().Extract(ctx, propagation.HeaderCarrier(headers))
}
