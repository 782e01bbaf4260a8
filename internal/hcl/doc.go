// Package hcl provides the HCL implementation of config.Loader. It parses
// `registry` blocks from .hcl files and translates them into the
// format-agnostic config model.
//
//	registry "sales" {
//	  description = "Columns of the monthly sales extract"
//
//	  field "dummy_field" {
//	    input_name    = "dummy_column_1"
//	    exported_name = "Dummy Column"
//	    type          = int32
//	  }
//	}
package hcl
