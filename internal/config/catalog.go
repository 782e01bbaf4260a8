package config

import (
	"context"
	"fmt"

	"github.com/vk/fieldreg/internal/ctxlog"
	"github.com/vk/fieldreg/internal/field"
	"github.com/vk/fieldreg/internal/registry"
)

// BuildCatalog builds one registry per definition. With strict set, repeated
// input names inside a registry are an error instead of an override.
func BuildCatalog(ctx context.Context, model *Model, strict bool) (*registry.Catalog, error) {
	logger := ctxlog.FromContext(ctx)
	catalog := registry.NewCatalog()

	for _, def := range model.Registries {
		decls := make([]registry.Declaration, 0, len(def.Fields))
		for _, f := range def.Fields {
			decls = append(decls, registry.Declaration{
				Name: f.Name,
				Field: field.New(f.InputName,
					field.WithExportedName(f.ExportedName),
					field.WithType(f.Type),
				),
				Description: f.Description,
			})
		}

		opts := []registry.Option{registry.WithLogger(logger), registry.WithDescription(def.Description)}
		if strict {
			opts = append(opts, registry.WithStrictInputNames())
		}
		reg, err := registry.New(def.Name, decls, opts...)
		if err != nil {
			return nil, fmt.Errorf("building registry declared in %s: %w", def.Source, err)
		}
		if err := catalog.Add(reg); err != nil {
			return nil, err
		}
		logger.Debug("Registry built.", "registry", def.Name, "declarations", reg.Len(), "fields", len(reg.Fields()))
	}

	logger.Debug("Catalog built.", "registries", catalog.Len())
	return catalog, nil
}
