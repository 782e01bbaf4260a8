package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vk/fieldreg/internal/frame"
	"github.com/vk/fieldreg/internal/registry"
)

// ErrUnknownCommand is returned by Run for a command it does not serve.
var ErrUnknownCommand = errors.New("unknown command")

// Commands lists the commands Run serves with their argument usage.
var Commands = []struct {
	Name  string
	Usage string
	Min   int
	Max   int // -1 for unbounded
}{
	{"registries", "", 0, 0},
	{"fields", "REGISTRY", 1, 1},
	{"field", "REGISTRY INPUT_NAME", 2, 2},
	{"renames", "REGISTRY", 1, 1},
	{"rename", "REGISTRY INPUT_NAME", 2, 2},
	{"cast", "REGISTRY COLUMN...", 1, -1},
	{"export", "REGISTRY", 1, 1},
}

// ValidateArgs checks that command exists and takes len(args) arguments.
func ValidateArgs(command string, args []string) error {
	for _, c := range Commands {
		if c.Name != command {
			continue
		}
		if len(args) < c.Min || (c.Max >= 0 && len(args) > c.Max) {
			return fmt.Errorf("usage: %s", strings.TrimSpace(c.Name+" "+c.Usage))
		}
		return nil
	}
	return fmt.Errorf("%w %q", ErrUnknownCommand, command)
}

// Run executes command with args and writes its result to the app output.
func (a *App) Run(command string, args []string) error {
	a.logger.Debug("Running command.", "command", command, "args", args)

	if err := ValidateArgs(command, args); err != nil {
		return err
	}
	if command == "registries" {
		return a.listRegistries()
	}

	reg, err := a.catalog.Get(args[0])
	if err != nil {
		return err
	}

	switch command {
	case "fields":
		return a.printer().fields(reg.Fields(), reg.Descriptions())
	case "field":
		f, err := reg.Field(args[1])
		if err != nil {
			return err
		}
		return a.printer().field(f, reg.Descriptions()[f.InputName])
	case "renames":
		return a.printer().mapping(reg.Renames(), nil)
	case "rename":
		name, err := reg.Rename(args[1])
		if err != nil {
			return err
		}
		return a.printer().scalar(name)
	case "cast":
		casts, err := reg.FieldsCast(args[1:])
		if err != nil {
			return err
		}
		return a.printer().mapping(casts, args[1:])
	case "export":
		return a.export(reg)
	default:
		return fmt.Errorf("%w %q", ErrUnknownCommand, command)
	}
}

func (a *App) listRegistries() error {
	names := a.catalog.Names()
	regs := make([]*registry.Registry, 0, len(names))
	for _, n := range names {
		reg, err := a.catalog.Get(n)
		if err != nil {
			return err
		}
		regs = append(regs, reg)
	}
	return a.printer().registries(regs)
}

// export reads a CSV dataset, casts every column to its declared type,
// renames the columns for presentation and writes the result.
func (a *App) export(reg *registry.Registry) error {
	in, closeIn, err := a.openInput()
	if err != nil {
		return err
	}
	defer closeIn()

	data, err := frame.ReadCSV(in)
	if err != nil {
		return err
	}
	a.logger.Debug("Dataset read.", "columns", len(data.Columns()), "rows", data.Len())

	casts, err := reg.FieldsCast(data.Columns())
	if err != nil {
		return fmt.Errorf("dataset does not match registry: %w", err)
	}
	typed, err := data.Cast(casts)
	if err != nil {
		return err
	}
	renamed := typed.Rename(reg.Renames())
	a.logger.Debug("Dataset cast and renamed.", "registry", reg.Name(), "columns", renamed.Columns())

	out, closeOut, err := a.openOutput()
	if err != nil {
		return err
	}
	defer closeOut()

	if a.config.ExportFormat == "json" {
		err = renamed.WriteJSON(out)
	} else {
		err = renamed.WriteCSV(out)
	}
	if err != nil {
		return err
	}
	a.logger.Info("Dataset exported.", "registry", reg.Name(), "rows", renamed.Len(), "format", a.config.ExportFormat)
	return nil
}

func (a *App) openInput() (io.Reader, func(), error) {
	path := a.config.ExportInput
	if path == "" || path == "-" {
		return a.inR, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func (a *App) openOutput() (io.Writer, func(), error) {
	path := a.config.ExportOutput
	if path == "" || path == "-" {
		return a.outW, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			a.logger.Error("Failed to close output file.", "path", path, "error", err)
		}
	}, nil
}
