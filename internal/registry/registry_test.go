package registry

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vk/fieldreg/internal/field"
)

var (
	dummyField  = field.New("dummy_column_1", field.WithExportedName("Dummy Column"), field.WithType("int32"))
	dummyField2 = field.New("dummy_column_2", field.WithExportedName("Dummy Column 2"))
)

func newDummyRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := New("dummy", []Declaration{
		Declare("dummy_field", dummyField),
		Declare("dummy_field_2", dummyField2),
	})
	require.NoError(t, err)
	return r
}

func TestRegistry_Queries(t *testing.T) {
	t.Parallel()
	r := newDummyRegistry(t)

	t.Run("Fields", func(t *testing.T) {
		t.Parallel()
		want := map[string]field.Descriptor{
			"dummy_column_1": dummyField,
			"dummy_column_2": dummyField2,
		}
		if diff := cmp.Diff(want, r.Fields()); diff != "" {
			t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Field", func(t *testing.T) {
		t.Parallel()
		f, err := r.Field("dummy_column_2")
		require.NoError(t, err)
		require.Equal(t, "object", f.Type, "undeclared type should default to object")

		_, err = r.Field("missing_col")
		require.ErrorIs(t, err, ErrFieldNotFound)
		require.Contains(t, err.Error(), `"missing_col"`)
	})

	t.Run("Field: Declaration name is not a lookup key", func(t *testing.T) {
		t.Parallel()
		_, err := r.Field("dummy_field")
		require.ErrorIs(t, err, ErrFieldNotFound)
	})

	t.Run("Renames", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, map[string]string{
			"dummy_column_1": "Dummy Column",
			"dummy_column_2": "Dummy Column 2",
		}, r.Renames())
	})

	t.Run("Rename", func(t *testing.T) {
		t.Parallel()
		name, err := r.Rename("dummy_column_1")
		require.NoError(t, err)
		require.Equal(t, "Dummy Column", name)

		_, err = r.Rename("nope")
		require.ErrorIs(t, err, ErrFieldNotFound)
	})

	t.Run("FieldsCast", func(t *testing.T) {
		t.Parallel()
		casts, err := r.FieldsCast([]string{"dummy_column_1", "dummy_column_2"})
		require.NoError(t, err)
		require.Equal(t, map[string]string{
			"dummy_column_1": "int32",
			"dummy_column_2": "object",
		}, casts)
	})

	t.Run("FieldsCast: Repeated columns collapse", func(t *testing.T) {
		t.Parallel()
		casts, err := r.FieldsCast([]string{"dummy_column_1", "dummy_column_1"})
		require.NoError(t, err)
		require.Equal(t, map[string]string{"dummy_column_1": "int32"}, casts)
	})

	t.Run("FieldsCast: Empty column list", func(t *testing.T) {
		t.Parallel()
		casts, err := r.FieldsCast(nil)
		require.NoError(t, err)
		require.Empty(t, casts)
	})

	t.Run("FieldsCast: First unknown column is reported", func(t *testing.T) {
		t.Parallel()
		casts, err := r.FieldsCast([]string{"dummy_column_1", "ghost_a", "ghost_b"})
		require.ErrorIs(t, err, ErrFieldNotFound)
		require.Contains(t, err.Error(), "ghost_a")
		require.NotContains(t, err.Error(), "ghost_b")
		require.Nil(t, casts)
	})

	t.Run("InputNames", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, []string{"dummy_column_1", "dummy_column_2"}, r.InputNames())
		require.Equal(t, 2, r.Len())
		require.Equal(t, "dummy", r.Name())
	})
}

func TestRegistry_ResultsAreFresh(t *testing.T) {
	t.Parallel()
	r := newDummyRegistry(t)

	first := r.Fields()
	delete(first, "dummy_column_1")
	renames := r.Renames()
	renames["dummy_column_2"] = "Tampered"

	require.Len(t, r.Fields(), 2, "mutating a returned map must not affect the registry")
	name, err := r.Rename("dummy_column_2")
	require.NoError(t, err)
	require.Equal(t, "Dummy Column 2", name)

	decls := r.Declarations()
	decls[0].Field.ExportedName = "Tampered"
	f, err := r.Field("dummy_column_1")
	require.NoError(t, err)
	require.Equal(t, "Dummy Column", f.ExportedName)
}

func TestNew_DuplicateInputNames(t *testing.T) {
	t.Parallel()

	decls := []Declaration{
		Declare("first", field.New("col", field.WithExportedName("First"), field.WithType("int8"))),
		Declare("other", field.New("other")),
		Declare("second", field.New("col", field.WithExportedName("Second"), field.WithType("float64"))),
	}

	t.Run("Success: Later declaration wins by default", func(t *testing.T) {
		t.Parallel()
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))

		r, err := New("dup", decls, WithLogger(logger))
		require.NoError(t, err)
		require.Len(t, r.Fields(), 2)
		require.Equal(t, 3, r.Len())

		f, err := r.Field("col")
		require.NoError(t, err)
		require.Equal(t, "Second", f.ExportedName)
		require.Equal(t, "float64", f.Type)
		require.Contains(t, logs.String(), "later declaration wins")
		require.Contains(t, logs.String(), "overridden=first")
	})

	t.Run("Failure: Strict registry rejects duplicates", func(t *testing.T) {
		t.Parallel()
		_, err := New("dup", decls, WithStrictInputNames())
		require.ErrorIs(t, err, ErrDuplicateInputName)
		require.Contains(t, err.Error(), `"first"`)
		require.Contains(t, err.Error(), `"second"`)
	})
}

func TestNew_ZeroDescriptorTakesDefaults(t *testing.T) {
	t.Parallel()
	r, err := New("defaults", []Declaration{
		Declare("bare", field.Descriptor{}),
		Declare("partial", field.Descriptor{InputName: "col"}),
	})
	require.NoError(t, err)

	want := map[string]field.Descriptor{
		field.DefaultName: {InputName: field.DefaultName, ExportedName: field.DefaultName, Type: field.DefaultType},
		"col":             {InputName: "col", ExportedName: field.DefaultName, Type: field.DefaultType},
	}
	if diff := cmp.Diff(want, r.Fields()); diff != "" {
		t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
	}

	casts, err := r.FieldsCast([]string{field.DefaultName})
	require.NoError(t, err)
	require.Equal(t, map[string]string{field.DefaultName: "object"}, casts)
	require.Equal(t, field.DefaultName, r.Declarations()[0].Field.ExportedName)
}

func TestRegistry_Descriptions(t *testing.T) {
	t.Parallel()
	r, err := New("described", []Declaration{
		{Name: "a", Field: field.New("col_a"), Description: "First"},
		{Name: "b", Field: field.New("col_b")},
		{Name: "c", Field: field.New("col_c"), Description: "Old"},
		{Name: "d", Field: field.New("col_c")},
	}, WithDescription("Described columns"))
	require.NoError(t, err)

	require.Equal(t, "Described columns", r.Description())
	require.Equal(t, map[string]string{"col_a": "First"}, r.Descriptions(),
		"the winning declaration decides the description")
	require.Empty(t, newDummyRegistry(t).Description())
}

func TestNew_InvalidDeclarations(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		decls []Declaration
	}{
		{
			name:  "empty declaration name",
			decls: []Declaration{Declare("", field.New("a"))},
		},
		{
			name: "repeated declaration name",
			decls: []Declaration{
				Declare("a", field.New("a")),
				Declare("a", field.New("b")),
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := New("bad", tc.decls)
			require.ErrorIs(t, err, ErrInvalidDeclaration)
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	t.Parallel()
	require.Panics(t, func() {
		MustNew("bad", []Declaration{Declare("", field.New("a"))})
	})
	require.NotPanics(t, func() {
		MustNew("empty", nil)
	})
}

func TestCatalog(t *testing.T) {
	t.Parallel()
	c := NewCatalog()
	require.NoError(t, c.Add(MustNew("b", nil)))
	require.NoError(t, c.Add(MustNew("a", nil)))

	err := c.Add(MustNew("a", nil))
	require.ErrorIs(t, err, ErrDuplicateRegistry)

	require.Equal(t, []string{"a", "b"}, c.Names())
	require.Equal(t, 2, c.Len())

	r, err := c.Get("b")
	require.NoError(t, err)
	require.Equal(t, "b", r.Name())

	_, err = c.Get("c")
	require.ErrorIs(t, err, ErrRegistryNotFound)
}

func ExampleRegistry_FieldsCast() {
	r := MustNew("sales", []Declaration{
		Declare("dummy_field", field.New("dummy_column_1", field.WithExportedName("Dummy Column"), field.WithType("int32"))),
		Declare("dummy_field_2", field.New("dummy_column_2", field.WithExportedName("Dummy Column 2"))),
	})

	casts, _ := r.FieldsCast([]string{"dummy_column_1", "dummy_column_2"})
	fmt.Println(casts["dummy_column_1"], casts["dummy_column_2"])

	name, _ := r.Rename("dummy_column_1")
	fmt.Println(name)
	// Output:
	// int32 object
	// Dummy Column
}
