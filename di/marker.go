package di

import "reflect"

// Component marks a struct as constructible by the Resolver. Embed it by
// value or pointer; the embedding type then satisfies the marker check.
//
// Component must not be zero-size: a struct holding only the marker would
// otherwise share one address across allocations.
type Component struct{ _ byte }

func (Component) diComponent() {}

// component is satisfied only through embedding Component.
type component interface{ diComponent() }

const (
	markerName = "di.Component"
	injectTag  = "inject"
)

var (
	componentType = reflect.TypeFor[component]()
	markerType    = reflect.TypeFor[Component]()
)

// isConcrete reports whether t has a shape the Resolver can construct:
// a struct or a pointer to a struct.
func isConcrete(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Struct:
		return true
	case reflect.Pointer:
		return t.Elem().Kind() == reflect.Struct
	default:
		return false
	}
}

// isComponent reports whether t is concrete and carries the marker.
func isComponent(t reflect.Type) bool {
	if !isConcrete(t) {
		return false
	}
	if t.Kind() == reflect.Struct {
		t = reflect.PointerTo(t)
	}
	return t.Implements(componentType)
}
