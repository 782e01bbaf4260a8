package config

import (
	"errors"
	"fmt"
)

// ErrDuplicateRegistry is returned when two declarations use one registry name.
var ErrDuplicateRegistry = errors.New("config: registry declared more than once")

// Model is the unified, format-agnostic representation of every declared
// registry.
type Model struct {
	Registries []*RegistryDefinition
}

// RegistryDefinition is one declared registry. Fields keep declaration order,
// which decides which field wins when input names repeat.
type RegistryDefinition struct {
	Name        string
	Description string
	Fields      []*FieldDefinition
	// Source is the file the registry was declared in.
	Source string
}

// FieldDefinition is one declared field. Empty attributes take the field
// package defaults when the registry is built.
type FieldDefinition struct {
	// Name is the declaration name, e.g. the label of a `field` block.
	Name         string
	InputName    string
	ExportedName string
	Type         string
	Description  string
}

// Registry returns the registry definition called name, or nil.
func (m *Model) Registry(name string) *RegistryDefinition {
	for _, r := range m.Registries {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// Merge appends the registries of other. A registry name may only be
// declared once across all merged models.
func (m *Model) Merge(other *Model) error {
	if other == nil {
		return nil
	}
	for _, r := range other.Registries {
		if prev := m.Registry(r.Name); prev != nil {
			return fmt.Errorf("%w: %q in %s and %s", ErrDuplicateRegistry, r.Name, prev.Source, r.Source)
		}
		m.Registries = append(m.Registries, r)
	}
	return nil
}
