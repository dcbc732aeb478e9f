// Package tracing provides OpenTelemetry tracing for fetches and monitor runs.
//
// # Overview
//
// When telemetry.tracing.enabled is set, spans are exported in batches to an
// OTLP gRPC collector. Otherwise New returns a noop tracer whose spans cost
// next to nothing, and a nil *Tracer behaves the same way.
//
// # Spans
//
//	agentsmd.fetch              one per Fetch call
//	  agentsmd.fetch.attempt    one per candidate URL (root, well_known)
//	agentsmd.monitor.run        one per scheduled run
//	  agentsmd.monitor.site     one per monitored site
//
// # Sampling
//
// sample_ratio selects a parent-based sampler: 1.0 samples every trace, 0.0
// none, and values in between use trace-ID ratio sampling.
//
// # Propagation
//
// The W3C Trace Context propagator is installed globally. Inject writes the
// traceparent header into outgoing AGENTS.md requests.
//
// # Usage
//
//	tracer, err := tracing.New(cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, "agentsmd.fetch")
//	defer span.End()
package tracing
