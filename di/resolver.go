package di

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/injector/errors"
	"github.com/kbukum/injector/logger"
	"github.com/kbukum/injector/observability"
)

const (
	tracerName = "github.com/kbukum/injector/di"
	spanName   = "di.resolve"
)

// Resolver builds component instances from a Registry. It holds no
// per-call state and is safe for concurrent use.
type Resolver struct {
	registry *Registry
	fields   *fieldCache
	log      *logger.Logger
	tracer   trace.Tracer
	metrics  *observability.ResolverMetrics
	embedded bool
}

// New creates a Resolver over registry. A nil registry behaves as an empty
// one, so only pass-through requests for concrete components succeed.
func New(registry *Registry, opts ...Option) *Resolver {
	if registry == nil {
		registry = emptyRegistry()
	}
	r := &Resolver{
		registry: registry,
		fields:   newFieldCache(),
		log:      logger.Get("di"),
		tracer:   observability.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns the registry the resolver reads from.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Resolve returns a fully constructed and injected instance for t. An
// interface type is looked up in the registry; a concrete component type is
// built directly.
func (r *Resolver) Resolve(t reflect.Type) (any, error) {
	return r.ResolveContext(context.Background(), t)
}

// ResolveContext is Resolve with a parent context for tracing spans.
// Resolution never blocks, so ctx is not checked for cancellation.
func (r *Resolver) ResolveContext(ctx context.Context, t reflect.Type) (any, error) {
	if t == nil {
		return nil, errors.New(errors.ErrCodeConfiguration, "cannot resolve a nil type")
	}

	start := time.Now()
	res := &resolution{id: uuid.NewString()}
	v, err := r.resolve(ctx, res, t)
	r.metrics.RecordResolution(ctx, t.String(), outcome(err), time.Since(start), res.constructed)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// resolution is the state of one outermost Resolve call.
type resolution struct {
	id          string
	path        []reflect.Type
	constructed int
}

// trail returns the type names on the current path followed by next.
func (res *resolution) trail(next reflect.Type) []string {
	names := make([]string, 0, len(res.path)+1)
	for _, t := range res.path {
		names = append(names, t.String())
	}
	return append(names, next.String())
}

func (r *Resolver) resolve(ctx context.Context, res *resolution, requested reflect.Type) (v reflect.Value, err error) {
	ctx, span := r.tracer.Start(ctx, spanName, trace.WithAttributes(
		attribute.String("di.capability", requested.String()),
		attribute.Int("di.depth", len(res.path)),
		attribute.String("di.resolution_id", res.id),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	concrete, err := r.concreteFor(requested)
	if err != nil {
		return reflect.Value{}, err
	}
	span.SetAttributes(attribute.String("di.concrete", concrete.String()))

	for _, seen := range res.path {
		if seen == concrete {
			return reflect.Value{}, errors.CircularDependency(res.trail(concrete))
		}
	}
	res.path = append(res.path, concrete)
	defer func() { res.path = res.path[:len(res.path)-1] }()

	instance, err := r.construct(ctx, res, concrete)
	if err != nil {
		return reflect.Value{}, err
	}
	if err := r.inject(ctx, res, concrete, instance); err != nil {
		return reflect.Value{}, err
	}

	res.constructed++
	r.log.Debug("component resolved", logger.Fields(
		logger.FieldCapability, requested.String(),
		logger.FieldConcrete, concrete.String(),
		logger.FieldDepth, len(res.path)-1,
		logger.FieldResolutionID, res.id,
	))
	return instance, nil
}

// concreteFor maps a requested type to the component type to build and
// checks the component marker.
func (r *Resolver) concreteFor(requested reflect.Type) (reflect.Type, error) {
	concrete := requested
	if requested.Kind() == reflect.Interface {
		bound, ok := r.registry.Lookup(requested)
		if !ok {
			return nil, errors.Unbound(requested.String())
		}
		concrete = bound
	}
	if !isComponent(concrete) {
		return nil, errors.NotComponent(concrete.String(), markerName)
	}
	return concrete, nil
}

// construct builds a new instance of concrete. A registered constructor has
// its parameters resolved first; otherwise the zero value is allocated.
// Struct components are returned addressable so injection can write them.
func (r *Resolver) construct(ctx context.Context, res *resolution, concrete reflect.Type) (reflect.Value, error) {
	ctor, ok := r.registry.constructorFor(concrete)
	if !ok {
		if concrete.Kind() == reflect.Pointer {
			return reflect.New(concrete.Elem()), nil
		}
		return reflect.New(concrete).Elem(), nil
	}

	args := make([]reflect.Value, len(ctor.params))
	for i, param := range ctor.params {
		arg, err := r.resolve(ctx, res, param)
		if err != nil {
			return reflect.Value{}, err
		}
		args[i] = arg
	}

	out, err := ctor.call(args)
	if err != nil {
		return reflect.Value{}, errors.Instantiation(concrete.String(), err)
	}
	if concrete.Kind() == reflect.Struct {
		addressable := reflect.New(concrete).Elem()
		addressable.Set(out)
		out = addressable
	}
	return out, nil
}

// inject resolves and assigns every injection point of instance.
func (r *Resolver) inject(ctx context.Context, res *resolution, concrete reflect.Type, instance reflect.Value) error {
	target := instance
	if target.Kind() == reflect.Pointer {
		target = target.Elem()
	}

	for _, point := range r.fields.injectionPoints(target.Type(), r.embedded) {
		field := target.FieldByIndex(point.index)
		if !field.CanSet() {
			return errors.Injection(concrete.String(), point.name,
				fmt.Errorf("field is unexported; register a constructor with Provide instead"))
		}

		dep, err := r.resolve(ctx, res, point.typ)
		if err != nil {
			return err
		}
		if !dep.Type().AssignableTo(field.Type()) {
			return errors.Injection(concrete.String(), point.name,
				fmt.Errorf("resolved type %s is not assignable to %s", dep.Type(), field.Type()))
		}
		field.Set(dep)
	}
	return nil
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if code := errors.CodeOf(err); code != "" {
		return string(code)
	}
	return "error"
}
