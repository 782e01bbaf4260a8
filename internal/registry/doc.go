// Package registry holds field registries: fixed, explicitly declared sets of
// field descriptors queried by their input name.
//
// A registry is populated exactly once, when it is built from its
// declarations, and is read-only afterwards. Every query derives its answer
// from the declarations at call time; nothing is cached, so callers that
// query a large registry in a loop should keep the returned map themselves.
//
// Two names exist for every entry. The declaration name locates the entry in
// its declaration (a Go literal or a `field "name" {}` block) and is never
// used for lookups. The descriptor's InputName is the only lookup key.
//
// Typical usage:
//
//	var Sales = registry.MustNew("sales", []registry.Declaration{
//	    registry.Declare("dummy_field", field.New("dummy_column_1",
//	        field.WithExportedName("Dummy Column"), field.WithType("int32"))),
//	})
package registry
