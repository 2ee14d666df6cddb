package bootstrap

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/injector/di"
	"github.com/kbukum/injector/errors"
	"github.com/kbukum/injector/logger"
	"github.com/kbukum/injector/observability"
)

// App owns the Registry and Resolver of a process together with its logger
// and telemetry providers. The type parameter C is the config type.
//
//	app, err := bootstrap.NewApp(&cfg, bootstrap.WithBindings(products.Bindings()...))
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
//	    // a.Cfg is *Config
//	    return nil
//	})
//	app.RunTask(ctx, task)
type App[C Config] struct {
	Name     string
	Version  string
	Cfg      C
	Registry *di.Registry
	Resolver *di.Resolver
	Logger   *logger.Logger
	Summary  *Summary

	tracerProvider  *sdktrace.TracerProvider
	meterProvider   *sdkmetric.MeterProvider
	gracefulTimeout time.Duration
	onConfigure     []func(ctx context.Context, app *App[C]) error

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// NewApp creates an application from a typed config. It applies defaults,
// validates, initializes the logger, starts OTLP export when enabled and
// builds the Resolver. Invalid bindings fail here, not at first use.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.GetServiceConfig()
	o := resolveOptions(opts)

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		gracefulTimeout: 15 * time.Second,
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(&base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	registry, err := buildRegistry(o)
	if err != nil {
		return nil, err
	}
	app.Registry = registry

	resolverOpts := []di.Option{
		di.WithLogger(app.Logger.WithComponent("di")),
		di.FromConfig(base.Resolver),
	}
	if base.Observability.Enabled {
		metrics, err := app.initObservability(context.Background(), base.Observability)
		if err != nil {
			_ = app.flush(context.Background())
			return nil, err
		}
		resolverOpts = append(resolverOpts, di.WithMetrics(metrics))
	}
	resolverOpts = append(resolverOpts, o.resolverOpts...)
	app.Resolver = di.New(registry, resolverOpts...)

	app.Summary = NewSummary(base.Name, base.Version, o.summaryOut)
	app.Summary.TrackInfrastructure("logging", base.Logging.Level+"/"+base.Logging.Format, true)
	if base.Observability.Enabled {
		app.Summary.TrackInfrastructure("otlp", base.Observability.Endpoint, true)
	}
	return app, nil
}

func buildRegistry(o *appOptions) (*di.Registry, error) {
	if o.registry != nil {
		if len(o.bindings) > 0 {
			return nil, errors.New(errors.ErrCodeConfiguration, "WithRegistry and WithBindings cannot be combined")
		}
		return o.registry, nil
	}
	reg, err := di.NewRegistry(o.bindings...)
	if err != nil {
		return nil, fmt.Errorf("registry: %w", err)
	}
	return reg, nil
}

func (a *App[C]) initObservability(ctx context.Context, cfg observability.Config) (*observability.ResolverMetrics, error) {
	tp, err := observability.InitTracer(ctx, cfg, a.Name, a.Version)
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}
	a.tracerProvider = tp

	mp, err := observability.InitMeter(ctx, cfg, a.Name, a.Version)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	a.meterProvider = mp

	return observability.NewResolverMetrics(mp.Meter("github.com/kbukum/injector/di"))
}

// OnConfigure registers a typed callback for the configure phase.
func (a *App[C]) OnConfigure(fn func(ctx context.Context, app *App[C]) error) {
	a.onConfigure = append(a.onConfigure, fn)
}

// Run starts the application and blocks until a signal or ctx is done, then
// shuts down.
func (a *App[C]) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	a.Logger.Info("Application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)

	return a.stop(context.WithoutCancel(ctx))
}

// RunTask starts the application, runs a finite task and shuts down when it
// returns. SIGINT and SIGTERM cancel the task's context. The task error takes
// precedence over a shutdown error.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		if stopErr := a.stop(context.WithoutCancel(ctx)); stopErr != nil {
			a.Logger.Warn("shutdown after failed startup", logger.ErrorFields("stop", stopErr))
		}
		return err
	}

	taskCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	taskErr := task(taskCtx)

	if stopErr := a.stop(context.WithoutCancel(ctx)); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

func (a *App[C]) startup(ctx context.Context) error {
	start := time.Now()

	a.Logger.Info("Starting application", logger.Fields(
		"name", a.Name,
		"version", a.Version,
		"bindings", a.Registry.Len(),
	))

	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	for _, fn := range a.onConfigure {
		if err := fn(ctx, a); err != nil {
			return fmt.Errorf("configuration failed: %w", err)
		}
	}

	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.Summary.SetStartupDuration(time.Since(start))
	a.DisplaySummary()
	return nil
}

// DisplaySummary prints the startup summary with the binding table.
func (a *App[C]) DisplaySummary() {
	a.Summary.Display(a.Registry.Bindings())
}

// WaitForSignal blocks until SIGINT, SIGTERM or ctx cancellation.
func (a *App[C]) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("Received shutdown signal", logger.Fields("signal", sig.String()))
		return sig
	case <-ctx.Done():
		a.Logger.Info("Context canceled, shutting down")
		return nil
	}
}

// Shutdown runs OnStop hooks and flushes telemetry. Use it when managing
// the lifecycle yourself. Hooks see ctx bounded by the graceful timeout, so
// a caller deadline or cancellation cuts shutdown short.
func (a *App[C]) Shutdown(ctx context.Context) error {
	return a.stop(ctx)
}

// stop runs shutdown under parent limited to the graceful timeout. Run and
// RunTask pass a parent detached from cancellation so hooks still get their
// full budget after the run context is done.
func (a *App[C]) stop(parent context.Context) error {
	a.Logger.Info("Shutting down application", logger.Fields(
		"timeout", a.gracefulTimeout.String(),
	))

	ctx, cancel := context.WithTimeout(parent, a.gracefulTimeout)
	defer cancel()

	var shutdownErr error
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("OnStop hook error", logger.ErrorFields("stop", err))
		shutdownErr = err
	}
	if err := a.flush(ctx); err != nil {
		a.Logger.Error("Telemetry flush error", logger.ErrorFields("flush", err))
		if shutdownErr == nil {
			shutdownErr = err
		}
	}

	a.Logger.Info("Application shutdown complete")
	return shutdownErr
}

// flush shuts down the telemetry providers, exporting buffered data.
func (a *App[C]) flush(ctx context.Context) error {
	var errs []error
	if a.tracerProvider != nil {
		errs = append(errs, a.tracerProvider.Shutdown(ctx))
		a.tracerProvider = nil
	}
	if a.meterProvider != nil {
		errs = append(errs, a.meterProvider.Shutdown(ctx))
		a.meterProvider = nil
	}
	return stderrors.Join(errs...)
}
