package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/injector/logger"
)

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The returned provider must be shut down on exit.
func InitMeter(ctx context.Context, cfg Config, serviceName, serviceVersion string) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(serviceName, serviceVersion)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.MetricInterval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.MetricInterval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", serviceName,
		"endpoint", cfg.Endpoint,
		"interval", cfg.MetricInterval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// ResolverMetrics holds the instruments recorded per outermost resolution.
type ResolverMetrics struct {
	resolutions metric.Int64Counter
	duration    metric.Float64Histogram
	constructed metric.Int64Counter
}

// NewResolverMetrics creates resolver instruments on the given meter.
func NewResolverMetrics(meter metric.Meter) (*ResolverMetrics, error) {
	resolutions, err := meter.Int64Counter("di.resolutions",
		metric.WithDescription("Resolve calls by capability and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating di.resolutions counter: %w", err)
	}

	duration, err := meter.Float64Histogram("di.resolve.duration",
		metric.WithDescription("Duration of Resolve calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating di.resolve.duration histogram: %w", err)
	}

	constructed, err := meter.Int64Counter("di.components.constructed",
		metric.WithDescription("Component instances built, dependencies included"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating di.components.constructed counter: %w", err)
	}

	return &ResolverMetrics{
		resolutions: resolutions,
		duration:    duration,
		constructed: constructed,
	}, nil
}

// RecordResolution records one outermost Resolve call. A nil receiver
// records nothing.
func (m *ResolverMetrics) RecordResolution(ctx context.Context, capability, outcome string, d time.Duration, constructed int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("capability", capability),
		attribute.String("outcome", outcome),
	)
	m.resolutions.Add(ctx, 1, attrs)
	m.duration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("capability", capability),
	))
	if constructed > 0 {
		m.constructed.Add(ctx, int64(constructed), metric.WithAttributes(
			attribute.String("capability", capability),
		))
	}
}
