package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/fieldreg/internal/app"
	"github.com/vk/fieldreg/internal/cli"
	"github.com/vk/fieldreg/internal/hcl"
	"github.com/vk/fieldreg/internal/yamlconfig"
)

// main is the entrypoint for the fieldreg application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(inR io.Reader, outW, errW io.Writer, args []string) (err error) {
	inv, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Registries built with MustNew panic on invalid declarations; report
	// that as a normal startup failure.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	fieldregApp, err := app.NewApp(inR, outW, errW, inv.Config, hcl.NewLoader(), yamlconfig.NewLoader())
	if err != nil {
		return err
	}
	return fieldregApp.Run(inv.Command, inv.Args)
}
