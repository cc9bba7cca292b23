package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Catalog groups the product and category handlers
type Catalog struct {
	Products   *Handler
	Categories *Handler
}

// New builds the product and category handlers over the same stores. The
// options are applied to both handlers.
func New(productsTable, categoriesTable string, options ...Option) (*Catalog, error) {
	products, err := NewHandler(ProductResource(productsTable), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create products handler: %w", err)
	}
	categories, err := NewHandler(CategoryResource(categoriesTable), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create categories handler: %w", err)
	}
	return &Catalog{Products: products, Categories: categories}, nil
}

// Functions returns every entrypoint keyed by "<resource>.<operation>",
// e.g. "products.create" or "categories.addImage".
func (c *Catalog) Functions() map[string]HandlerFunc {
	functions := make(map[string]HandlerFunc, 12)
	for _, h := range []*Handler{c.Products, c.Categories} {
		if h == nil {
			continue
		}
		prefix := h.resource.Name + "."
		functions[prefix+"create"] = h.Create
		functions[prefix+"get"] = h.Get
		functions[prefix+"update"] = h.Update
		functions[prefix+"delete"] = h.Delete
		functions[prefix+"list"] = h.List
		functions[prefix+"addImage"] = h.AddImage
	}
	return functions
}

// Function looks up a single entrypoint by name
func (c *Catalog) Function(name string) (HandlerFunc, error) {
	fn, ok := c.Functions()[name]
	if !ok {
		return nil, fmt.Errorf("unknown handler %q (available: %s)", name, strings.Join(c.FunctionNames(), ", "))
	}
	return fn, nil
}

// FunctionNames returns the sorted entrypoint names
func (c *Catalog) FunctionNames() []string {
	functions := c.Functions()
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
