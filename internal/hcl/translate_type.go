// This file contains the logic for reading a field's `type` attribute, which
// may be a bare keyword (`int32`) or a string (`"datetime64[ns]"`).

package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// typeExprToTag returns the type tag named by expr, or "" when the attribute
// was omitted.
func typeExprToTag(expr hcl.Expression) (string, hcl.Diagnostics) {
	if expr == nil {
		return "", nil
	}

	if kw := hcl.ExprAsKeyword(expr); kw != "" {
		return kw, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	if val.IsNull() {
		return "", nil
	}
	if !val.IsKnown() || !val.Type().Equals(cty.String) {
		return "", hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid type",
			Detail:   "A field type must be a keyword such as int32 or a string such as \"datetime64[ns]\".",
			Subject:  expr.Range().Ptr(),
		}}
	}
	return val.AsString(), nil
}
