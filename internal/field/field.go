// Package field defines the descriptor of a single tabular column: the name
// it carries in source data, the name it is exported under and the type it
// is expected to be cast to.
package field

import "fmt"

const (
	// DefaultName is used for an input or exported name that was not declared.
	DefaultName = " "
	// DefaultType is the generic, untyped column type.
	DefaultType = "object"
)

// Descriptor describes one column. It is a value type; copies are
// independent and nothing in this module mutates a declared descriptor.
type Descriptor struct {
	// InputName is the column identifier as it appears in source data.
	// It is the only key registry lookups accept.
	InputName string `json:"input_name"`

	// ExportedName is the human-readable name used when renaming a column
	// before export.
	ExportedName string `json:"exported_name"`

	// Type is the type tag the column should be cast to, e.g. "int32".
	Type string `json:"type"`
}

// Option sets an optional attribute of a Descriptor.
type Option func(*Descriptor)

// WithExportedName sets the exported name.
func WithExportedName(name string) Option {
	return func(d *Descriptor) { d.ExportedName = name }
}

// WithType sets the type tag.
func WithType(tag string) Option {
	return func(d *Descriptor) { d.Type = tag }
}

// New builds a Descriptor for inputName. Attributes left empty take the
// package defaults.
func New(inputName string, opts ...Option) Descriptor {
	d := Descriptor{InputName: inputName}
	for _, opt := range opts {
		opt(&d)
	}
	return d.WithDefaults()
}

// WithDefaults returns a copy of d with empty attributes set to their
// defaults.
func (d Descriptor) WithDefaults() Descriptor {
	if d.InputName == "" {
		d.InputName = DefaultName
	}
	if d.ExportedName == "" {
		d.ExportedName = DefaultName
	}
	if d.Type == "" {
		d.Type = DefaultType
	}
	return d
}

// String implements fmt.Stringer.
func (d Descriptor) String() string {
	return fmt.Sprintf("field(input_name=%q, exported_name=%q, type=%q)", d.InputName, d.ExportedName, d.Type)
}
