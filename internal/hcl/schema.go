package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is the top-level structure of a declaration file.
type fileRoot struct {
	Registries []*registryBlock `hcl:"registry,block"`
}

// registryBlock is a `registry "name" {}` block.
type registryBlock struct {
	Name        string        `hcl:"name,label"`
	Description string        `hcl:"description,optional"`
	Fields      []*fieldBlock `hcl:"field,block"`
}

// fieldBlock is a `field "name" {}` block. The label is the declaration
// name; input_name is the lookup key.
type fieldBlock struct {
	Name         string         `hcl:"name,label"`
	InputName    string         `hcl:"input_name,optional"`
	ExportedName string         `hcl:"exported_name,optional"`
	Type         hcl.Expression `hcl:"type,optional"`
	Description  string         `hcl:"description,optional"`
	DeclRange    hcl.Range      `hcl:",def_range"`
}
