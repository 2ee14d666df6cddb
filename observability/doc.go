// Package observability wires OpenTelemetry tracing and metrics.
//
// The resolver records one span per resolved node, so the span tree of a
// resolution mirrors the instance graph it built, and counts resolutions
// through ResolverMetrics.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, cfg, "products", "1.0.0")
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, cfg, "products", "1.0.0")
//	m, err := observability.NewResolverMetrics(observability.Meter("di"))
package observability
