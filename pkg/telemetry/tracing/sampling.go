package tracing

import (
	"fmt"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// createSampler creates a parent-based sampler for ratio. A ratio of 1 samples
// every trace and 0 samples none.
//
// The sampling decision is made once at trace creation and propagated to all
// child spans, so a monitor run is either traced entirely or not at all.
func createSampler(ratio float64) (sdktrace.Sampler, error) {
	var baseSampler sdktrace.Sampler

	switch {
	case ratio < 0.0 || ratio > 1.0:
		return nil, fmt.Errorf("sample ratio must be between 0.0 and 1.0, got %f", ratio)
	case ratio == 1.0:
		baseSampler = sdktrace.AlwaysSample()
	case ratio == 0.0:
		baseSampler = sdktrace.NeverSample()
	default:
		baseSampler = sdktrace.TraceIDRatioBased(ratio)
	}

	return sdktrace.ParentBased(baseSampler), nil
}
