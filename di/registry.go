package di

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/kbukum/injector/errors"
)

// Binding is one entry of a Registry: either a capability bound to a
// component type (Bind) or a constructor for a component type (Provide).
type Binding struct {
	capability  reflect.Type
	concrete    reflect.Type
	constructor any
}

// Bind binds capability I to component type C.
//
//	di.Bind[ProductParser, *csvParser]()
func Bind[I any, C any]() Binding {
	return BindTypes(reflect.TypeFor[I](), reflect.TypeFor[C]())
}

// BindTypes is the reflect.Type form of Bind.
func BindTypes(capability, concrete reflect.Type) Binding {
	return Binding{capability: capability, concrete: concrete}
}

// Provide registers constructor as the way to build the component type it
// returns. Accepted shapes are func(deps...) C and func(deps...) (C, error).
func Provide(constructor any) Binding {
	return Binding{constructor: constructor}
}

// BindingInfo describes a registry entry for introspection.
type BindingInfo struct {
	Capability  string
	Concrete    string
	Constructor bool
}

// Registry is the immutable capability → component table.
type Registry struct {
	bindings     map[reflect.Type]reflect.Type
	constructors map[reflect.Type]*constructor
}

// NewRegistry validates bindings and builds a Registry. Every capability
// must be an interface, every component a struct or pointer to struct that
// implements its capability, and neither may be registered twice.
func NewRegistry(bindings ...Binding) (*Registry, error) {
	reg := emptyRegistry()

	for i, b := range bindings {
		var err error
		if b.constructor != nil {
			err = reg.addConstructor(b.constructor)
		} else {
			err = reg.addBinding(b.capability, b.concrete)
		}
		if err != nil {
			if appErr, ok := errors.AsAppError(err); ok {
				return nil, appErr.WithDetail("index", i)
			}
			return nil, err
		}
	}

	// Constructors may be registered for types nobody binds; they still
	// serve pass-through requests.
	return reg, nil
}

// MustRegistry is NewRegistry that panics on an invalid table. Intended for
// package-level registries built at process start.
func MustRegistry(bindings ...Binding) *Registry {
	reg, err := NewRegistry(bindings...)
	if err != nil {
		panic(fmt.Sprintf("di: %v", err))
	}
	return reg
}

func emptyRegistry() *Registry {
	return &Registry{
		bindings:     make(map[reflect.Type]reflect.Type),
		constructors: make(map[reflect.Type]*constructor),
	}
}

func (r *Registry) addBinding(capability, concrete reflect.Type) error {
	switch {
	case capability == nil || concrete == nil:
		return errors.InvalidBinding("capability and component types are required")
	case capability.Kind() != reflect.Interface:
		return errors.InvalidBinding(fmt.Sprintf("capability %s is not an interface", capability)).
			WithDetail("type", capability.String())
	case !isConcrete(concrete):
		return errors.InvalidBinding(fmt.Sprintf("component %s must be a struct or pointer to struct", concrete)).
			WithDetail("type", concrete.String())
	case !concrete.Implements(capability):
		return errors.InvalidBinding(fmt.Sprintf("%s does not implement %s", concrete, capability)).
			WithDetail("type", concrete.String())
	}

	if existing, ok := r.bindings[capability]; ok {
		return errors.InvalidBinding(fmt.Sprintf("capability %s is already bound to %s", capability, existing)).
			WithDetail("type", capability.String())
	}
	r.bindings[capability] = concrete
	return nil
}

func (r *Registry) addConstructor(fn any) error {
	ctor, err := newConstructor(fn)
	if err != nil {
		return err
	}
	if existing, ok := r.constructors[ctor.result]; ok {
		return errors.InvalidBinding(fmt.Sprintf("%s already has constructor %s", ctor.result, existing.name)).
			WithDetail("type", ctor.result.String())
	}
	r.constructors[ctor.result] = ctor
	return nil
}

// Lookup returns the component type bound to capability.
func (r *Registry) Lookup(capability reflect.Type) (reflect.Type, bool) {
	concrete, ok := r.bindings[capability]
	return concrete, ok
}

// constructorFor returns the registered constructor for a component type.
func (r *Registry) constructorFor(concrete reflect.Type) (*constructor, bool) {
	ctor, ok := r.constructors[concrete]
	return ctor, ok
}

// Len returns the number of capability bindings.
func (r *Registry) Len() int {
	return len(r.bindings)
}

// Bindings returns the capability bindings sorted by capability name.
func (r *Registry) Bindings() []BindingInfo {
	out := make([]BindingInfo, 0, len(r.bindings))
	for capability, concrete := range r.bindings {
		_, hasCtor := r.constructors[concrete]
		out = append(out, BindingInfo{
			Capability:  capability.String(),
			Concrete:    concrete.String(),
			Constructor: hasCtor,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Capability < out[j].Capability })
	return out
}
