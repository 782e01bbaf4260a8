package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/fieldreg/internal/field"
)

var (
	// ErrFieldNotFound is returned when an input name is not declared.
	ErrFieldNotFound = errors.New("registry: field not found")
	// ErrDuplicateInputName is returned by strict registries when two
	// declarations share an input name.
	ErrDuplicateInputName = errors.New("registry: duplicate input name")
	// ErrInvalidDeclaration is returned for unnamed or repeated declarations.
	ErrInvalidDeclaration = errors.New("registry: invalid declaration")
)

// Declaration binds a descriptor to the name it was declared under.
type Declaration struct {
	Name  string
	Field field.Descriptor
	// Description is free text for readers of the catalog. Lookups ignore it.
	Description string
}

// Declare is a shorthand for building a Declaration.
func Declare(name string, d field.Descriptor) Declaration {
	return Declaration{Name: name, Field: d}
}

// Option modifies registry construction.
type Option func(*options)

type options struct {
	strict      bool
	logger      *slog.Logger
	description string
}

// WithStrictInputNames rejects declarations that repeat an input name instead
// of letting the later one win.
func WithStrictInputNames() Option { return func(o *options) { o.strict = true } }

// WithLogger attaches a logger used to report overridden input names.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// WithDescription sets the text returned by Description.
func WithDescription(text string) Option { return func(o *options) { o.description = text } }

// Registry is a named, immutable set of field declarations.
// It is safe for concurrent use.
type Registry struct {
	name        string
	description string
	decls       []Declaration
}

// New builds a registry from decls, keeping their order. Empty descriptor
// attributes take the field defaults. Declaration names must be non-empty and
// unique. Repeated input names are accepted unless WithStrictInputNames is
// set; the later declaration wins.
func New(name string, decls []Declaration, opts ...Option) (*Registry, error) {
	var o options
	for _, fn := range opts {
		fn(&o)
	}

	normalized := make([]Declaration, len(decls))
	seenDecl := make(map[string]struct{}, len(decls))
	seenInput := make(map[string]string, len(decls))
	for i, d := range decls {
		d.Field = d.Field.WithDefaults()
		normalized[i] = d

		if d.Name == "" {
			return nil, fmt.Errorf("%w: empty declaration name in registry %q", ErrInvalidDeclaration, name)
		}
		if _, ok := seenDecl[d.Name]; ok {
			return nil, fmt.Errorf("%w: %q declared twice in registry %q", ErrInvalidDeclaration, d.Name, name)
		}
		seenDecl[d.Name] = struct{}{}

		if prev, ok := seenInput[d.Field.InputName]; ok {
			if o.strict {
				return nil, fmt.Errorf("%w: %q is declared by both %q and %q in registry %q",
					ErrDuplicateInputName, d.Field.InputName, prev, d.Name, name)
			}
			if o.logger != nil {
				o.logger.Warn("Input name declared more than once, later declaration wins.",
					"registry", name, "input_name", d.Field.InputName, "overridden", prev, "winner", d.Name)
			}
		}
		seenInput[d.Field.InputName] = d.Name
	}

	return &Registry{
		name:        name,
		description: o.description,
		decls:       normalized,
	}, nil
}

// MustNew is like New but panics on error. Useful for package-level registries.
func MustNew(name string, decls []Declaration, opts ...Option) *Registry {
	r, err := New(name, decls, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Name returns the registry name.
func (r *Registry) Name() string { return r.name }

// Description returns the free-text description set with WithDescription.
func (r *Registry) Description() string { return r.description }

// Len returns the number of declarations, including overridden ones.
func (r *Registry) Len() int { return len(r.decls) }

// Declarations returns a copy of the declarations in declaration order.
func (r *Registry) Declarations() []Declaration {
	out := make([]Declaration, len(r.decls))
	copy(out, r.decls)
	return out
}

// Fields returns every declared descriptor keyed by input name.
func (r *Registry) Fields() map[string]field.Descriptor {
	fields := make(map[string]field.Descriptor, len(r.decls))
	for _, d := range r.decls {
		fields[d.Field.InputName] = d.Field
	}
	return fields
}

// Descriptions maps each input name to the description of the declaration
// that wins it. Input names declared without a description are left out.
func (r *Registry) Descriptions() map[string]string {
	texts := make(map[string]string, len(r.decls))
	for _, d := range r.decls {
		if d.Description == "" {
			delete(texts, d.Field.InputName)
			continue
		}
		texts[d.Field.InputName] = d.Description
	}
	return texts
}

// Field returns the descriptor declared for inputName.
func (r *Registry) Field(inputName string) (field.Descriptor, error) {
	return r.lookup(r.Fields(), inputName)
}

func (r *Registry) lookup(fields map[string]field.Descriptor, inputName string) (field.Descriptor, error) {
	f, ok := fields[inputName]
	if !ok {
		return field.Descriptor{}, fmt.Errorf("%w: %q in registry %q", ErrFieldNotFound, inputName, r.name)
	}
	return f, nil
}

// Renames maps every input name to its exported name, ready to drive a bulk
// column rename.
func (r *Registry) Renames() map[string]string {
	fields := r.Fields()
	renames := make(map[string]string, len(fields))
	for inputName, f := range fields {
		renames[inputName] = f.ExportedName
	}
	return renames
}

// Rename returns the exported name declared for inputName.
func (r *Registry) Rename(inputName string) (string, error) {
	renames := r.Renames()
	exported, ok := renames[inputName]
	if !ok {
		return "", fmt.Errorf("%w: %q in registry %q", ErrFieldNotFound, inputName, r.name)
	}
	return exported, nil
}

// FieldsCast maps each of columns to its declared type tag. Repeated columns
// collapse into one entry. The first column that is not declared stops the
// call with ErrFieldNotFound.
func (r *Registry) FieldsCast(columns []string) (map[string]string, error) {
	fields := r.Fields()
	casts := make(map[string]string, len(columns))
	for _, col := range columns {
		f, err := r.lookup(fields, col)
		if err != nil {
			return nil, err
		}
		casts[f.InputName] = f.Type
	}
	return casts, nil
}

// InputNames returns the distinct input names in lexicographic order.
func (r *Registry) InputNames() []string {
	fields := r.Fields()
	names := make([]string, 0, len(fields))
	for n := range fields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
