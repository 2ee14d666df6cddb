package di

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"sync"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/injector/errors"
	"github.com/kbukum/injector/logger"
)

func newTestResolver(t *testing.T, bindings ...Binding) *Resolver {
	t.Helper()
	reg, err := NewRegistry(bindings...)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return New(reg, WithLogger(logger.Nop()))
}

func TestResolveBoundCapability(t *testing.T) {
	r := newTestResolver(t, Bind[Greeter, *englishGreeter]())

	v, err := r.Resolve(reflect.TypeFor[Greeter]())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	g, ok := v.(*englishGreeter)
	if !ok {
		t.Fatalf("got %T, want *englishGreeter", v)
	}
	if g.Greet() != "hello" {
		t.Errorf("Greet() = %q", g.Greet())
	}
}

func TestResolvePassThrough(t *testing.T) {
	r := New(nil, WithLogger(logger.Nop()))

	v, err := r.Resolve(reflect.TypeFor[*memStore]())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, ok := v.(*memStore); !ok {
		t.Errorf("got %T, want *memStore", v)
	}
}

func TestResolveValueComponent(t *testing.T) {
	r := newTestResolver(t, Bind[Greeter, valueGreeter]())

	v, err := r.Resolve(reflect.TypeFor[Greeter]())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	g, ok := v.(valueGreeter)
	if !ok {
		t.Fatalf("got %T, want valueGreeter", v)
	}
	if g.Greet() != "hi" {
		t.Errorf("Greet() = %q, want hi", g.Greet())
	}
}

func TestResolveConfigurationErrors(t *testing.T) {
	tests := []struct {
		name     string
		bindings []Binding
		typ      reflect.Type
		contains []string
	}{
		{
			name:     "unbound capability",
			typ:      reflect.TypeFor[Greeter](),
			contains: []string{"no binding registered", "di.Greeter"},
		},
		{
			name:     "bound component without marker",
			bindings: []Binding{Bind[Greeter, *plainGreeter]()},
			typ:      reflect.TypeFor[Greeter](),
			contains: []string{"*di.plainGreeter", "must embed di.Component"},
		},
		{
			name:     "concrete type without marker",
			typ:      reflect.TypeFor[*plainGreeter](),
			contains: []string{"*di.plainGreeter", "must embed di.Component"},
		},
		{
			name:     "non-struct type",
			typ:      reflect.TypeFor[string](),
			contains: []string{"string", "must embed"},
		},
		{
			name:     "nil type",
			contains: []string{"nil type"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(t, tt.bindings...)
			v, err := r.Resolve(tt.typ)
			if err == nil {
				t.Fatalf("expected error, got %v", v)
			}
			if v != nil {
				t.Errorf("expected nil instance, got %v", v)
			}
			if !errors.IsConfiguration(err) {
				t.Errorf("expected configuration error, got %v", err)
			}
			if !containsAll(err.Error(), tt.contains...) {
				t.Errorf("error %q should contain %q", err, tt.contains)
			}
		})
	}
}

func TestResolveRecursiveInjection(t *testing.T) {
	r := newTestResolver(t,
		Bind[Handler, *handler](),
		Bind[Service, *service](),
		Bind[Store, *memStore](),
	)

	v, err := r.Resolve(reflect.TypeFor[Handler]())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	h := v.(*handler)
	if h.Svc == nil {
		t.Fatal("Handler.Svc not injected")
	}
	if h.Svc.Store() == nil {
		t.Fatal("Service.S not injected")
	}
	if h.Svc.Store().Name() != "mem" {
		t.Errorf("Store.Name() = %q", h.Svc.Store().Name())
	}
}

func TestResolveMarkerOnlyIdentity(t *testing.T) {
	r := newTestResolver(t, Bind[Greeter, *englishGreeter](), Bind[Store, *memStore]())

	for _, capability := range []reflect.Type{reflect.TypeFor[Greeter](), reflect.TypeFor[Store]()} {
		t.Run(capability.String(), func(t *testing.T) {
			first, err := r.Resolve(capability)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			second, err := r.Resolve(capability)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if reflect.ValueOf(first).Pointer() == reflect.ValueOf(second).Pointer() {
				t.Errorf("%T instances share an address", first)
			}
		})
	}
}

func TestResolveFreshInstances(t *testing.T) {
	r := newTestResolver(t, Bind[Store, *memStore](), Bind[Service, *service]())

	first, err := r.Resolve(reflect.TypeFor[Service]())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	second, err := r.Resolve(reflect.TypeFor[Service]())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if first == second {
		t.Error("expected distinct instances per call")
	}
	if first.(Service).Store() == second.(Service).Store() {
		t.Error("expected distinct dependencies per call")
	}

	v, err := r.Resolve(reflect.TypeFor[*twoStores]())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	ts := v.(*twoStores)
	if ts.A == nil || ts.B == nil {
		t.Fatal("fields not injected")
	}
	if ts.A == ts.B {
		t.Error("two fields of the same capability should get distinct instances")
	}
}

func TestResolveConcreteDependency(t *testing.T) {
	r := newTestResolver(t)

	v, err := r.Resolve(reflect.TypeFor[*concreteDep]())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if v.(*concreteDep).M == nil {
		t.Error("concrete dependency not injected")
	}
}

func TestResolveSkipsUntaggedAndDashFields(t *testing.T) {
	r := newTestResolver(t, Bind[Store, *memStore]())

	v, err := r.Resolve(reflect.TypeFor[*skipper]())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	s := v.(*skipper)
	if s.S != nil {
		t.Error(`field tagged inject:"-" should stay nil`)
	}
	if s.Label != "" {
		t.Error("untagged field should keep its zero value")
	}
}

func TestResolveNestedErrorPropagates(t *testing.T) {
	r := newTestResolver(t, Bind[Handler, *handler](), Bind[Service, *service]())

	_, err := r.Resolve(reflect.TypeFor[Handler]())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsConfiguration(err) {
		t.Errorf("expected configuration error, got %v", err)
	}
	// The innermost failure is returned unchanged.
	if !containsAll(err.Error(), "no binding registered for capability di.Store") {
		t.Errorf("unexpected error: %v", err)
	}
	appErr, _ := errors.AsAppError(err)
	if appErr.Details["type"] != "di.Store" {
		t.Errorf("type detail = %v, want di.Store", appErr.Details["type"])
	}
}

func TestResolveUnexportedTaggedField(t *testing.T) {
	r := newTestResolver(t, Bind[Store, *memStore]())

	_, err := r.Resolve(reflect.TypeFor[*hidden]())
	if !stdIs(err, errors.ErrInjection) {
		t.Fatalf("expected injection error, got %v", err)
	}
	if errors.IsConfiguration(err) {
		t.Error("injection error should not match the configuration sentinel")
	}
	if !containsAll(err.Error(), "cannot initialize field s of *di.hidden") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestResolveEmbeddedFields(t *testing.T) {
	reg := MustRegistry(Bind[Store, *memStore]())

	tests := []struct {
		name string
		opts []Option
		want bool
	}{
		{"disabled by default", nil, false},
		{"WithEmbeddedFields", []Option{WithEmbeddedFields(true)}, true},
		{"FromConfig", []Option{FromConfig(Config{IncludeEmbedded: true})}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(reg, append([]Option{WithLogger(logger.Nop())}, tt.opts...)...)
			v, err := r.Resolve(reflect.TypeFor[*withBase]())
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got := v.(*withBase).S != nil; got != tt.want {
				t.Errorf("embedded field injected = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveCircularDependency(t *testing.T) {
	tests := []struct {
		name     string
		bindings []Binding
		typ      reflect.Type
		path     []string
	}{
		{
			name:     "through fields",
			bindings: []Binding{Bind[Ping, *pinger](), Bind[Pong, *ponger]()},
			typ:      reflect.TypeFor[Ping](),
			path:     []string{"*di.pinger", "*di.ponger", "*di.pinger"},
		},
		{
			name: "self reference",
			typ:  reflect.TypeFor[*selfRef](),
			path: []string{"*di.selfRef", "*di.selfRef"},
		},
		{
			name:     "through constructors",
			bindings: []Binding{Provide(newCtorA), Provide(newCtorB)},
			typ:      reflect.TypeFor[*ctorA](),
			path:     []string{"*di.ctorA", "*di.ctorB", "*di.ctorA"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(t, tt.bindings...)
			_, err := r.Resolve(tt.typ)
			if !stdIs(err, errors.ErrCircularDependency) {
				t.Fatalf("expected circular dependency, got %v", err)
			}
			if !errors.IsConfiguration(err) {
				t.Error("circular dependency should match the configuration sentinel")
			}
			appErr, _ := errors.AsAppError(err)
			if !reflect.DeepEqual(appErr.Details["path"], tt.path) {
				t.Errorf("path = %v, want %v", appErr.Details["path"], tt.path)
			}
			if !strings.Contains(err.Error(), strings.Join(tt.path, " -> ")) {
				t.Errorf("message %q should show the path", err)
			}
		})
	}
}

func TestResolveDiamondIsNotACycle(t *testing.T) {
	r := newTestResolver(t, Bind[Store, *memStore]())

	if _, err := r.Resolve(reflect.TypeFor[*twoStores]()); err != nil {
		t.Fatalf("repeated sibling dependency reported as error: %v", err)
	}
}

func TestResolveConcurrent(t *testing.T) {
	r := newTestResolver(t,
		Bind[Handler, *handler](),
		Bind[Service, *service](),
		Bind[Store, *memStore](),
	)

	const workers = 32
	results := make([]any, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = r.Resolve(reflect.TypeFor[Handler]())
		}(i)
	}
	wg.Wait()

	seen := make(map[any]bool, workers)
	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if seen[results[i]] {
			t.Fatalf("worker %d got a shared instance", i)
		}
		seen[results[i]] = true
	}
}

func TestResolveSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	reg := MustRegistry(
		Bind[Handler, *handler](),
		Bind[Service, *service](),
		Bind[Store, *memStore](),
	)
	r := New(reg, WithLogger(logger.Nop()), WithTracer(tp.Tracer("test")))

	if _, err := r.Resolve(reflect.TypeFor[Handler]()); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 3 {
		t.Fatalf("got %d spans, want one per resolved node", len(spans))
	}

	byCapability := map[string]tracetest.SpanStub{}
	for _, s := range spans {
		if s.Name != spanName {
			t.Errorf("span name = %q, want %q", s.Name, spanName)
		}
		byCapability[attr(s.Attributes, "di.capability").AsString()] = s
	}

	root := byCapability["di.Handler"]
	svc := byCapability["di.Service"]
	store := byCapability["di.Store"]
	if svc.Parent.SpanID() != root.SpanContext.SpanID() {
		t.Error("Service span should be a child of Handler span")
	}
	if store.Parent.SpanID() != svc.SpanContext.SpanID() {
		t.Error("Store span should be a child of Service span")
	}
	if got := attr(store.Attributes, "di.depth").AsInt64(); got != 2 {
		t.Errorf("Store depth = %d, want 2", got)
	}
	if got := attr(root.Attributes, "di.concrete").AsString(); got != "*di.handler" {
		t.Errorf("Handler concrete = %q", got)
	}
	id := attr(root.Attributes, "di.resolution_id").AsString()
	if id == "" || attr(store.Attributes, "di.resolution_id").AsString() != id {
		t.Error("all spans of one resolution should share its id")
	}
}

func TestResolveSpanRecordsError(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	r := New(nil, WithLogger(logger.Nop()), WithTracer(tp.Tracer("test")))
	if _, err := r.Resolve(reflect.TypeFor[Greeter]()); err == nil {
		t.Fatal("expected error")
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("status = %v, want Error", spans[0].Status.Code)
	}
}

func TestResolveTracingDisabled(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	r := New(MustRegistry(Bind[Store, *memStore]()),
		WithLogger(logger.Nop()),
		WithTracer(tp.Tracer("test")),
		FromConfig(Config{DisableTracing: true}),
	)
	if _, err := r.Resolve(reflect.TypeFor[Store]()); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if n := len(exporter.GetSpans()); n != 0 {
		t.Errorf("got %d spans with tracing disabled", n)
	}
}

func TestResolveDebugLog(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf)

	r := New(MustRegistry(Bind[Store, *memStore]()), WithLogger(log))
	if _, err := r.Resolve(reflect.TypeFor[Store]()); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	out := buf.String()
	if !containsAll(out, `"component resolved"`, `"capability":"di.Store"`, `"concrete":"*di.memStore"`, `"depth":0`) {
		t.Errorf("unexpected log output: %s", out)
	}
}

func TestResolverRegistry(t *testing.T) {
	reg := MustRegistry()
	if New(reg).Registry() != reg {
		t.Error("Registry() should return the registry passed to New")
	}
	if New(nil).Registry() == nil {
		t.Error("nil registry should be replaced by an empty one")
	}
}

func attr(kvs []attribute.KeyValue, key string) attribute.Value {
	for _, kv := range kvs {
		if string(kv.Key) == key {
			return kv.Value
		}
	}
	return attribute.Value{}
}
