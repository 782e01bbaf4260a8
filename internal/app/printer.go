package app

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/vk/fieldreg/internal/field"
	"github.com/vk/fieldreg/internal/registry"
)

// printer renders command results as aligned text or JSON.
type printer struct {
	w    io.Writer
	json bool
}

func (a *App) printer() *printer {
	return &printer{w: a.outW, json: a.config.OutputFormat == "json"}
}

func (p *printer) encode(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// fieldView is a descriptor with the description of its declaration.
type fieldView struct {
	field.Descriptor
	Description string `json:"description,omitempty"`
}

// fields prints one row per descriptor. The description column only appears
// when at least one field has a description.
func (p *printer) fields(fields map[string]field.Descriptor, descriptions map[string]string) error {
	if p.json {
		views := make(map[string]fieldView, len(fields))
		for n, f := range fields {
			views[n] = fieldView{Descriptor: f, Description: descriptions[n]}
		}
		return p.encode(views)
	}
	names := make([]string, 0, len(fields))
	for n := range fields {
		names = append(names, n)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	if len(descriptions) > 0 {
		fmt.Fprintln(tw, "INPUT NAME\tEXPORTED NAME\tTYPE\tDESCRIPTION")
	} else {
		fmt.Fprintln(tw, "INPUT NAME\tEXPORTED NAME\tTYPE")
	}
	for _, n := range names {
		f := fields[n]
		if len(descriptions) > 0 {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.InputName, f.ExportedName, f.Type, descriptions[n])
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.InputName, f.ExportedName, f.Type)
	}
	return tw.Flush()
}

func (p *printer) field(f field.Descriptor, description string) error {
	if p.json {
		return p.encode(fieldView{Descriptor: f, Description: description})
	}
	var descriptions map[string]string
	if description != "" {
		descriptions = map[string]string{f.InputName: description}
	}
	return p.fields(map[string]field.Descriptor{f.InputName: f}, descriptions)
}

// registries prints the name, field count and description of each registry.
func (p *printer) registries(regs []*registry.Registry) error {
	type registryView struct {
		Name        string `json:"name"`
		Fields      int    `json:"fields"`
		Description string `json:"description,omitempty"`
	}
	if p.json {
		views := make([]registryView, 0, len(regs))
		for _, r := range regs {
			views = append(views, registryView{Name: r.Name(), Fields: len(r.Fields()), Description: r.Description()})
		}
		return p.encode(views)
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	for _, r := range regs {
		if r.Description() == "" {
			fmt.Fprintf(tw, "%s\t%d fields\n", r.Name(), len(r.Fields()))
			continue
		}
		fmt.Fprintf(tw, "%s\t%d fields\t%s\n", r.Name(), len(r.Fields()), r.Description())
	}
	return tw.Flush()
}

// mapping prints m. Text output follows order when given, skipping repeats,
// and sorted keys otherwise.
func (p *printer) mapping(m map[string]string, order []string) error {
	if p.json {
		return p.encode(m)
	}
	if order == nil {
		for k := range m {
			order = append(order, k)
		}
		sort.Strings(order)
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	seen := make(map[string]struct{}, len(order))
	for _, k := range order {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		fmt.Fprintf(tw, "%s\t%s\n", k, m[k])
	}
	return tw.Flush()
}

func (p *printer) scalar(s string) error {
	if p.json {
		return p.encode(s)
	}
	_, err := fmt.Fprintln(p.w, s)
	return err
}
