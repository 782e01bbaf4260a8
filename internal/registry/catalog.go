package registry

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrRegistryNotFound is returned when a catalog has no registry by that name.
	ErrRegistryNotFound = errors.New("registry: registry not found")
	// ErrDuplicateRegistry is returned when a registry name is added twice.
	ErrDuplicateRegistry = errors.New("registry: duplicate registry")
)

// Catalog holds the registries of one application instance. It is filled
// during startup and only read afterwards.
type Catalog struct {
	registries map[string]*Registry
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{registries: make(map[string]*Registry)}
}

// Add puts r into the catalog under its name.
func (c *Catalog) Add(r *Registry) error {
	if _, exists := c.registries[r.Name()]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateRegistry, r.Name())
	}
	c.registries[r.Name()] = r
	return nil
}

// Get returns the registry called name.
func (c *Catalog) Get(name string) (*Registry, error) {
	r, ok := c.registries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRegistryNotFound, name)
	}
	return r, nil
}

// Names returns the registry names in lexicographic order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.registries))
	for n := range c.registries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registries.
func (c *Catalog) Len() int { return len(c.registries) }
