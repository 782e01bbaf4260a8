// Package config defines the format-agnostic model of field registry
// declarations, along with the Loader interface concrete formats implement.
//
// The `config.Model` is the single source the application builds its
// registry.Catalog from. Concrete loaders, such as the HCL and YAML ones,
// live in separate packages.
package config
