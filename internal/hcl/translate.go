package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/fieldreg/internal/cast"
	"github.com/vk/fieldreg/internal/config"
	"github.com/vk/fieldreg/internal/ctxlog"
)

// translateRegistry converts a registry block into the agnostic model,
// keeping field order.
func (l *Loader) translateRegistry(ctx context.Context, b *registryBlock, file string) (*config.RegistryDefinition, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	var diags hcl.Diagnostics

	def := &config.RegistryDefinition{
		Name:        b.Name,
		Description: b.Description,
		Source:      file,
	}

	seen := make(map[string]*fieldBlock, len(b.Fields))
	for _, fb := range b.Fields {
		if prev, exists := seen[fb.Name]; exists {
			subject := fb.DeclRange
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate field declaration",
				Detail:   fmt.Sprintf("A field named %q was already declared at %s.", fb.Name, prev.DeclRange),
				Subject:  &subject,
			})
			continue
		}
		seen[fb.Name] = fb

		tag, typeDiags := typeExprToTag(fb.Type)
		diags = append(diags, typeDiags...)
		if typeDiags.HasErrors() {
			continue
		}
		if tag != "" {
			if _, err := cast.Lookup(tag); err != nil {
				logger.Warn("Field declares a type tag with no cast support.", "registry", b.Name, "field", fb.Name, "type", tag)
			}
		}

		def.Fields = append(def.Fields, &config.FieldDefinition{
			Name:         fb.Name,
			InputName:    fb.InputName,
			ExportedName: fb.ExportedName,
			Type:         tag,
			Description:  fb.Description,
		})
	}
	return def, diags
}
