// Package cast gives meaning to the type tags declared on fields. It maps a
// tag such as "int32" or "datetime64[ns]" to a cty type and converts raw
// tabular cells into typed cty values.
package cast

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

var (
	// ErrUnknownType is returned for a type tag with no known meaning.
	ErrUnknownType = errors.New("cast: unknown type")
	// ErrCastFailed is returned when a raw value cannot be cast to its tag.
	ErrCastFailed = errors.New("cast: value cannot be cast")
)

// Kind is the family a type tag belongs to.
type Kind int

const (
	KindObject Kind = iota
	KindString
	KindBool
	KindInteger
	KindFloat
	KindDatetime
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindDatetime:
		return "datetime"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Spec is the resolved meaning of a type tag.
type Spec struct {
	Tag  string
	Kind Kind
	// Min and Max bound integer tags; both are nil for other kinds.
	Min, Max *big.Int
	// MaxAbs bounds the magnitude of float tags; nil for other kinds.
	MaxAbs *big.Float
}

func intRange(bits uint) (*big.Int, *big.Int) {
	limit := new(big.Int).Lsh(big.NewInt(1), bits-1)
	return new(big.Int).Neg(limit), new(big.Int).Sub(limit, big.NewInt(1))
}

func uintRange(bits uint) (*big.Int, *big.Int) {
	limit := new(big.Int).Lsh(big.NewInt(1), bits)
	return big.NewInt(0), new(big.Int).Sub(limit, big.NewInt(1))
}

// Lookup resolves a type tag. Tags are case-insensitive.
func Lookup(tag string) (Spec, error) {
	norm := strings.ToLower(strings.TrimSpace(tag))
	spec := Spec{Tag: norm}
	switch norm {
	case "object":
		spec.Kind = KindObject
	case "string", "str":
		spec.Kind = KindString
	case "bool", "boolean":
		spec.Kind = KindBool
	case "float32":
		spec.Kind = KindFloat
		spec.MaxAbs = big.NewFloat(math.MaxFloat32)
	case "float", "float64":
		spec.Kind = KindFloat
		spec.MaxAbs = big.NewFloat(math.MaxFloat64)
	case "datetime", "datetime64", "datetime64[ns]":
		spec.Kind = KindDatetime
	case "int8":
		spec.Kind = KindInteger
		spec.Min, spec.Max = intRange(8)
	case "int16":
		spec.Kind = KindInteger
		spec.Min, spec.Max = intRange(16)
	case "int32":
		spec.Kind = KindInteger
		spec.Min, spec.Max = intRange(32)
	case "int", "int64":
		spec.Kind = KindInteger
		spec.Min, spec.Max = intRange(64)
	case "uint8":
		spec.Kind = KindInteger
		spec.Min, spec.Max = uintRange(8)
	case "uint16":
		spec.Kind = KindInteger
		spec.Min, spec.Max = uintRange(16)
	case "uint32":
		spec.Kind = KindInteger
		spec.Min, spec.Max = uintRange(32)
	case "uint", "uint64":
		spec.Kind = KindInteger
		spec.Min, spec.Max = uintRange(64)
	default:
		return Spec{}, fmt.Errorf("%w %q", ErrUnknownType, tag)
	}
	return spec, nil
}

// CtyType returns the cty type values of tag are cast to. Object columns are
// left as strings.
func (s Spec) CtyType() cty.Type {
	switch s.Kind {
	case KindBool:
		return cty.Bool
	case KindInteger, KindFloat:
		return cty.Number
	default:
		return cty.String
	}
}

// CtyType is a shorthand for Lookup(tag) followed by Spec.CtyType.
func CtyType(tag string) (cty.Type, error) {
	spec, err := Lookup(tag)
	if err != nil {
		return cty.NilType, err
	}
	return spec.CtyType(), nil
}

// datetimeLayouts are tried in order when casting datetime columns.
var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Value casts a raw cell to its declared tag. An empty cell becomes a typed
// null; object columns keep their raw text.
func Value(raw, tag string) (cty.Value, error) {
	spec, err := Lookup(tag)
	if err != nil {
		return cty.NilVal, err
	}
	return spec.Value(raw)
}

// Value casts raw according to s.
func (s Spec) Value(raw string) (cty.Value, error) {
	ty := s.CtyType()
	if raw == "" {
		return cty.NullVal(ty), nil
	}

	switch s.Kind {
	case KindObject, KindString:
		return cty.StringVal(raw), nil

	case KindDatetime:
		for _, layout := range datetimeLayouts {
			if ts, err := time.Parse(layout, raw); err == nil {
				return cty.StringVal(ts.UTC().Format(time.RFC3339Nano)), nil
			}
		}
		return cty.NilVal, s.failure(raw, errors.New("not a recognised timestamp"))
	}

	v, err := convert.Convert(cty.StringVal(strings.TrimSpace(raw)), ty)
	if err != nil {
		return cty.NilVal, s.failure(raw, err)
	}

	bf := v.AsBigFloat()
	if bf.IsInf() {
		return cty.NilVal, s.failure(raw, errors.New("not a finite number"))
	}
	if s.MaxAbs != nil && new(big.Float).Abs(bf).Cmp(s.MaxAbs) > 0 {
		return cty.NilVal, s.failure(raw, fmt.Errorf("magnitude exceeds %s", s.MaxAbs.Text('g', 8)))
	}
	if s.Kind == KindInteger {
		if !bf.IsInt() {
			return cty.NilVal, s.failure(raw, errors.New("not a whole number"))
		}
		n, _ := bf.Int(nil)
		if n.Cmp(s.Min) < 0 || n.Cmp(s.Max) > 0 {
			return cty.NilVal, s.failure(raw, fmt.Errorf("out of range [%s, %s]", s.Min, s.Max))
		}
	}
	return v, nil
}

func (s Spec) failure(raw string, cause error) error {
	return fmt.Errorf("%w: %q as %s: %v", ErrCastFailed, raw, s.Tag, cause)
}
