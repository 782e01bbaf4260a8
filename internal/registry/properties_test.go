package registry

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/fieldreg/internal/field"
	"pgregory.net/rapid"
)

var (
	inputNamePool = []string{"a", "b", "c", "d", "e"}
	typePool      = []string{"int32", "float64", "bool", "object", "string"}
)

// drawDeclarations draws a declaration list whose input names collide often.
func drawDeclarations(rt *rapid.T) []Declaration {
	n := rapid.IntRange(0, 12).Draw(rt, "n")
	decls := make([]Declaration, n)
	for i := range decls {
		input := rapid.SampledFrom(inputNamePool).Draw(rt, "input")
		typ := rapid.SampledFrom(typePool).Draw(rt, "type")
		decls[i] = Declare(fmt.Sprintf("decl_%d", i), field.New(input,
			field.WithExportedName(fmt.Sprintf("Export %d", i)),
			field.WithType(typ),
		))
	}
	return decls
}

func TestProperty_FieldsLastDeclarationWins(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		decls := drawDeclarations(rt)
		r := MustNew("prop", decls)

		want := make(map[string]field.Descriptor)
		for _, d := range decls {
			want[d.Field.InputName] = d.Field
		}
		got := r.Fields()

		require.Equal(rt, want, got)
		require.LessOrEqual(rt, len(got), len(decls))
	})
}

func TestProperty_RenamesShareFieldKeys(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := MustNew("prop", drawDeclarations(rt))
		fields := r.Fields()
		renames := r.Renames()

		require.Len(rt, renames, len(fields))
		for k, f := range fields {
			require.Contains(rt, renames, k)
			require.Equal(rt, f.ExportedName, renames[k])
		}
	})
}

func TestProperty_FieldFailsIffUndeclared(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := MustNew("prop", drawDeclarations(rt))
		fields := r.Fields()
		queried := rapid.SampledFrom(append(inputNamePool, "zz")).Draw(rt, "queried")

		_, err := r.Field(queried)
		_, declared := fields[queried]
		require.Equal(rt, !declared, errors.Is(err, ErrFieldNotFound))

		_, err = r.Rename(queried)
		require.Equal(rt, !declared, errors.Is(err, ErrFieldNotFound))
	})
}

func TestProperty_FieldsCastKeySet(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := MustNew("prop", drawDeclarations(rt))
		fields := r.Fields()
		columns := rapid.SliceOf(rapid.SampledFrom(append(inputNamePool, "zz"))).Draw(rt, "columns")

		casts, err := r.FieldsCast(columns)

		distinct := make(map[string]struct{})
		allDeclared := true
		for _, c := range columns {
			distinct[c] = struct{}{}
			if _, ok := fields[c]; !ok {
				allDeclared = false
			}
		}
		if !allDeclared {
			require.ErrorIs(rt, err, ErrFieldNotFound)
			return
		}
		require.NoError(rt, err)
		require.Len(rt, casts, len(distinct))
		for c := range distinct {
			require.Equal(rt, fields[c].Type, casts[c])
		}
	})
}

func TestProperty_QueriesAreIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := MustNew("prop", drawDeclarations(rt))
		require.Equal(rt, r.Fields(), r.Fields())
		require.Equal(rt, r.Renames(), r.Renames())

		names := r.InputNames()
		first, err1 := r.FieldsCast(names)
		second, err2 := r.FieldsCast(names)
		require.NoError(rt, err1)
		require.NoError(rt, err2)
		require.Equal(rt, first, second)
	})
}
