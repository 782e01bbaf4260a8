// Package yamlconfig provides the YAML implementation of config.Loader.
//
//	registries:
//	  - name: sales
//	    fields:
//	      - name: dummy_field
//	        input_name: dummy_column_1
//	        exported_name: Dummy Column
//	        type: int32
package yamlconfig

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/fieldreg/internal/config"
	"github.com/vk/fieldreg/internal/ctxlog"
	"github.com/vk/fieldreg/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// Extensions are the file extensions the loader picks up.
var Extensions = []string{".yaml", ".yml"}

// File is the root structure of a YAML declaration file.
type File struct {
	Registries []RegistryDef `yaml:"registries"`
}

// RegistryDef declares one registry.
type RegistryDef struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Fields      []FieldDef `yaml:"fields"`
}

// FieldDef declares one field. Name is the declaration name; InputName is
// the lookup key.
type FieldDef struct {
	Name         string `yaml:"name"`
	InputName    string `yaml:"input_name"`
	ExportedName string `yaml:"exported_name"`
	Type         string `yaml:"type"`
	Description  string `yaml:"description"`
}

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML declaration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .yaml/.yml file under paths and merges their registries.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(paths, Extensions...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := &config.Model{}
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		fileModel, err := Parse(content, path)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(fileModel); err != nil {
			return nil, err
		}
		logger.Debug("Loaded declarations from YAML file.", "file", path, "registries", len(fileModel.Registries))
	}

	logger.Debug("YAML loading complete.", "registries", len(model.Registries))
	return model, nil
}

// Parse decodes one YAML document. Unknown keys are rejected.
func Parse(content []byte, source string) (*config.Model, error) {
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}

	model := &config.Model{}
	for _, r := range file.Registries {
		if r.Name == "" {
			return nil, fmt.Errorf("parse %s: registry without a name", source)
		}
		def := &config.RegistryDefinition{
			Name:        r.Name,
			Description: r.Description,
			Source:      source,
		}
		seen := make(map[string]struct{}, len(r.Fields))
		for _, f := range r.Fields {
			if f.Name == "" {
				return nil, fmt.Errorf("parse %s: registry %q has a field without a name", source, r.Name)
			}
			if _, ok := seen[f.Name]; ok {
				return nil, fmt.Errorf("parse %s: registry %q declares field %q twice", source, r.Name, f.Name)
			}
			seen[f.Name] = struct{}{}
			def.Fields = append(def.Fields, &config.FieldDefinition{
				Name:         f.Name,
				InputName:    f.InputName,
				ExportedName: f.ExportedName,
				Type:         f.Type,
				Description:  f.Description,
			})
		}
		if err := model.Merge(&config.Model{Registries: []*config.RegistryDefinition{def}}); err != nil {
			return nil, err
		}
	}
	return model, nil
}
