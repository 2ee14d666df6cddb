package products

import "github.com/kbukum/injector/di"

// Bindings returns the registry entries of the catalog components.
func Bindings() []di.Binding {
	return []di.Binding{
		di.Bind[FileReader, *fileReader](),
		di.Bind[ProductParser, *csvParser](),
		di.Bind[ProductService, *productService](),
	}
}
