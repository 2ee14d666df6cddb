package di

import (
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/kbukum/injector/logger"
	"github.com/kbukum/injector/observability"
)

// Config holds resolver settings loaded with the service configuration.
// It never carries bindings.
type Config struct {
	// IncludeEmbedded also scans fields promoted from embedded structs.
	IncludeEmbedded bool `yaml:"include_embedded" mapstructure:"include_embedded"`
	// DisableTracing turns off the span recorded for every resolved node.
	DisableTracing bool `yaml:"disable_tracing" mapstructure:"disable_tracing"`
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for debug output.
func WithLogger(l *logger.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// WithTracer sets the tracer used for resolution spans.
func WithTracer(t trace.Tracer) Option {
	return func(r *Resolver) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithMetrics records resolution counters and durations.
func WithMetrics(m *observability.ResolverMetrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// WithEmbeddedFields makes the resolver scan fields of embedded structs.
func WithEmbeddedFields(enabled bool) Option {
	return func(r *Resolver) {
		r.embedded = enabled
	}
}

// FromConfig applies a Config.
func FromConfig(cfg Config) Option {
	return func(r *Resolver) {
		r.embedded = cfg.IncludeEmbedded
		if cfg.DisableTracing {
			r.tracer = noop.NewTracerProvider().Tracer(tracerName)
		}
	}
}
