// Package bootstrap runs a service built on the resolver.
//
// NewApp applies config defaults, validates, initializes logging and the
// optional OTLP providers, and builds the Registry and Resolver the process
// uses. There is exactly one Resolver per App; components obtain their
// dependencies through it rather than through package globals.
//
//	app, err := bootstrap.NewApp(&cfg, bootstrap.WithBindings(products.Bindings()...))
//	if err != nil {
//	    return err
//	}
//	return app.RunTask(ctx, func(ctx context.Context) error {
//	    svc, err := di.ResolveContext[products.ProductService](ctx, app.Resolver)
//	    ...
//	})
package bootstrap
