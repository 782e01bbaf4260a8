package hcl

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/vk/fieldreg/internal/config"
	"github.com/vk/fieldreg/internal/testutil"
)

const salesHCL = `
registry "sales" {
  description = "Monthly sales extract"

  field "dummy_field" {
    input_name    = "dummy_column_1"
    exported_name = "Dummy Column"
    type          = int32
  }

  field "dummy_field_2" {
    input_name    = "dummy_column_2"
    exported_name = "Dummy Column 2"
  }

  field "sold_at" {
    input_name    = "SoldAt"
    exported_name = "Sold At"
    type          = "datetime64[ns]"
  }
}
`

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("Success: Parses registries in declaration order", func(t *testing.T) {
		t.Parallel()
		ctx, _ := testutil.Context(t)
		root := testutil.WriteFiles(t, map[string]string{
			"catalog/sales.hcl":     salesHCL,
			"catalog/nested/hr.hcl": `registry "hr" {}`,
			"catalog/notes.txt":     `not a declaration`,
		})

		model, err := NewLoader().Load(ctx, filepath.Join(root, "catalog"))
		require.NoError(t, err)
		require.Len(t, model.Registries, 2)

		sales := model.Registry("sales")
		require.NotNil(t, sales)
		require.Equal(t, "Monthly sales extract", sales.Description)
		require.Equal(t, filepath.Join(root, "catalog", "sales.hcl"), sales.Source)

		want := []*config.FieldDefinition{
			{Name: "dummy_field", InputName: "dummy_column_1", ExportedName: "Dummy Column", Type: "int32"},
			{Name: "dummy_field_2", InputName: "dummy_column_2", ExportedName: "Dummy Column 2"},
			{Name: "sold_at", InputName: "SoldAt", ExportedName: "Sold At", Type: "datetime64[ns]"},
		}
		if diff := cmp.Diff(want, sales.Fields, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("fields mismatch (-want +got):\n%s", diff)
		}

		hr := model.Registry("hr")
		require.NotNil(t, hr)
		require.Empty(t, hr.Fields)
	})

	t.Run("Success: Missing path yields an empty model", func(t *testing.T) {
		t.Parallel()
		ctx, _ := testutil.Context(t)
		model, err := NewLoader().Load(ctx, filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		require.Empty(t, model.Registries)
	})

	t.Run("Success: Unknown type tag is loaded with a warning", func(t *testing.T) {
		t.Parallel()
		ctx, logs := testutil.Context(t)
		root := testutil.WriteFiles(t, map[string]string{
			"a.hcl": `
registry "r" {
  field "f" {
    input_name = "c"
    type       = complex128
  }
}`,
		})
		model, err := NewLoader().Load(ctx, root)
		require.NoError(t, err)
		require.Equal(t, "complex128", model.Registries[0].Fields[0].Type)
		require.Contains(t, logs.String(), "no cast support")
	})
}

func TestLoader_Load_Failures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		files       map[string]string
		errContains string
	}{
		{
			name:        "syntax error",
			files:       map[string]string{"a.hcl": `registry "r" {`},
			errContains: "failed to parse HCL file",
		},
		{
			name: "unknown attribute",
			files: map[string]string{"a.hcl": `
registry "r" {
  field "f" { colour = "red" }
}`},
			errContains: "failed to decode HCL file",
		},
		{
			name: "duplicate field label",
			files: map[string]string{"a.hcl": `
registry "r" {
  field "f" { input_name = "a" }
  field "f" { input_name = "b" }
}`},
			errContains: "Duplicate field declaration",
		},
		{
			name: "type is not a string",
			files: map[string]string{"a.hcl": `
registry "r" {
  field "f" { type = 12 }
}`},
			errContains: "Invalid type",
		},
		{
			name: "registry declared in two files",
			files: map[string]string{
				"a.hcl": `registry "r" {}`,
				"b.hcl": `registry "r" {}`,
			},
			errContains: "registry declared more than once",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctx, _ := testutil.Context(t)
			root := testutil.WriteFiles(t, tc.files)

			_, err := NewLoader().Load(ctx, root)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.errContains)
		})
	}
}
