package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/fieldreg/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// exportFlags are the flags only the export command reads.
var exportFlags = map[string]struct{}{"in": {}, "out": {}, "format": {}}

// Invocation is a parsed command line.
type Invocation struct {
	Config  *app.Config
	Command string
	Args    []string
}

// Parse processes command-line arguments. It returns a populated Invocation,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Invocation, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("fieldreg", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
fieldreg - Query field registries and export tabular data with them.

Usage:
  fieldreg [options] COMMAND [ARGS]

Commands:
`)
		for _, c := range app.Commands {
			fmt.Fprintf(output, "  %s %s\n", c.Name, c.Usage)
		}
		fmt.Fprint(output, "\nOptions:\n")
		flagSet.PrintDefaults()
	}

	catalogFlag := flagSet.String("catalog", "catalog", "Comma-separated .hcl/.yaml files or directories declaring registries.")
	strictFlag := flagSet.Bool("strict", false, "Reject registries that declare an input name more than once.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	outputFlag := flagSet.String("output", "text", "Result format. Options: 'text' or 'json'.")
	inFlag := flagSet.String("in", "-", "export: CSV dataset to read, '-' for stdin.")
	outFlag := flagSet.String("out", "-", "export: file to write, '-' for stdout.")
	formatFlag := flagSet.String("format", "csv", "export: output format. Options: 'csv' or 'json'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No command provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	command, cmdArgs := flagSet.Arg(0), flagSet.Args()[1:]
	if err := app.ValidateArgs(command, cmdArgs); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if command != "export" {
		var misplaced string
		flagSet.Visit(func(f *flag.Flag) {
			if _, ok := exportFlags[f.Name]; ok && misplaced == "" {
				misplaced = f.Name
			}
		})
		if misplaced != "" {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("flag -%s only applies to the export command", misplaced)}
		}
	}
	slog.Debug("CLI parameter validation complete.")

	var paths []string
	for _, p := range strings.Split(*catalogFlag, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}

	config, err := app.NewConfig(app.Config{
		CatalogPaths: paths,
		Strict:       *strictFlag,
		LogFormat:    *logFormatFlag,
		LogLevel:     *logLevelFlag,
		OutputFormat: strings.ToLower(*outputFlag),
		ExportInput:  *inFlag,
		ExportOutput: *outFlag,
		ExportFormat: strings.ToLower(*formatFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "command", command, "config", config)
	return &Invocation{Config: config, Command: command, Args: cmdArgs}, false, nil
}
