package bootstrap

import (
	"io"
	"time"

	"github.com/kbukum/injector/di"
	"github.com/kbukum/injector/logger"
)

// Option configures the App during creation. Options are non-generic so
// they work with any config type.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	bindings        []di.Binding
	registry        *di.Registry
	resolverOpts    []di.Option
	gracefulTimeout *time.Duration
	summaryOut      io.Writer
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger. Without it the logger is initialized from
// the config's Logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithBindings adds registry entries. NewApp validates them together and
// fails on the first invalid one.
func WithBindings(bindings ...di.Binding) Option {
	return func(o *appOptions) {
		o.bindings = append(o.bindings, bindings...)
	}
}

// WithRegistry uses a prebuilt registry. It cannot be combined with
// WithBindings.
func WithRegistry(reg *di.Registry) Option {
	return func(o *appOptions) {
		o.registry = reg
	}
}

// WithResolverOptions passes extra options to di.New after the ones derived
// from config.
func WithResolverOptions(opts ...di.Option) Option {
	return func(o *appOptions) {
		o.resolverOpts = append(o.resolverOpts, opts...)
	}
}

// WithGracefulTimeout bounds shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}

// WithSummaryOutput redirects the startup summary. Pass io.Discard to
// silence it.
func WithSummaryOutput(w io.Writer) Option {
	return func(o *appOptions) {
		o.summaryOut = w
	}
}
