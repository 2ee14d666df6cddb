// Package di resolves capabilities (interface types) to ready-to-use
// component instances.
//
// A Registry binds every capability to exactly one concrete component type
// and is immutable once built. A Resolver constructs the component, then
// walks its fields tagged `inject` and fills each one by resolving the
// field's type recursively. Every call builds a fresh instance graph; nothing
// is cached.
//
// # Components
//
// A concrete type becomes resolvable by embedding the Component marker:
//
//	type productService struct {
//	    di.Component
//	    Reader FileReader    `inject:""`
//	    Parser ProductParser `inject:""`
//	}
//
// Injection writes exported fields only. Types that keep their dependencies
// unexported register a constructor instead; its parameters are resolved
// and passed positionally:
//
//	reg := di.MustRegistry(
//	    di.Bind[ProductService, *productService](),
//	    di.Provide(newProductService),
//	)
//
// # Resolution
//
//	r := di.New(reg)
//	svc, err := di.Resolve[ProductService](r)
//
// Failures are errors.AppError values: CONFIGURATION_ERROR for missing
// bindings, missing markers and invalid registries, CIRCULAR_DEPENDENCY when
// a component needs itself, INSTANTIATION_ERROR when a constructor fails and
// INJECTION_ERROR when a field cannot be written.
package di
