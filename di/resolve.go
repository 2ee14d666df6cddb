package di

import (
	"context"
	"fmt"
	"reflect"
)

// Resolve resolves T with type safety, returns error on failure.
//
// Example:
//
//	svc, err := di.Resolve[products.Service](r)
//	if err != nil {
//	    return fmt.Errorf("resolve product service: %w", err)
//	}
func Resolve[T any](r *Resolver) (T, error) {
	return ResolveContext[T](context.Background(), r)
}

// ResolveContext is Resolve with a parent context for tracing spans.
func ResolveContext[T any](ctx context.Context, r *Resolver) (T, error) {
	var zero T
	instance, err := r.ResolveContext(ctx, reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	result, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("di: resolved %T, expected %s", instance, reflect.TypeFor[T]())
	}
	return result, nil
}

// MustResolve resolves T and panics on error. Use it where a missing
// binding is a programming error, such as in main.
func MustResolve[T any](r *Resolver) T {
	result, err := Resolve[T](r)
	if err != nil {
		panic(fmt.Sprintf("di: failed to resolve %s: %v", reflect.TypeFor[T](), err))
	}
	return result
}
