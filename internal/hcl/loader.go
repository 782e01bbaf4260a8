package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/fieldreg/internal/config"
	"github.com/vk/fieldreg/internal/ctxlog"
	"github.com/vk/fieldreg/internal/fsutil"
)

// Extension is the file extension the loader picks up.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL declaration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under paths and merges their registries.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(paths, Extension)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		fileModel := &config.Model{}
		for _, block := range root.Registries {
			def, diags := l.translateRegistry(ctx, block, file)
			if diags.HasErrors() {
				return nil, fmt.Errorf("invalid registry %q in %s: %w", block.Name, file, diags)
			}
			if err := fileModel.Merge(&config.Model{Registries: []*config.RegistryDefinition{def}}); err != nil {
				return nil, err
			}
		}
		if err := model.Merge(fileModel); err != nil {
			return nil, err
		}
		logger.Debug("Loaded declarations from HCL file.", "file", file, "registries", len(fileModel.Registries))
	}

	logger.Debug("HCL loading complete.", "registries", len(model.Registries))
	return model, nil
}
