package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// logLevels maps the accepted log level names to slog levels.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	CatalogPaths []string // .hcl, .yaml and .yml declaration files or directories
	Strict       bool     // reject repeated input names inside a registry

	LogFormat    string     // text or json
	LogLevel     string     // debug, info, warn or error
	Level        slog.Level // parsed from LogLevel by NewConfig
	OutputFormat string     // text or json

	ExportInput  string // "" or "-" reads stdin
	ExportOutput string // "" or "-" writes stdout
	ExportFormat string // csv or json
}

// NewConfig validates cfg and fills defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.CatalogPaths) == 0 {
		return nil, errors.New("at least one catalog path is required")
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	level, ok := logLevels[cfg.LogLevel]
	if !ok {
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	cfg.Level = level

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "text"
	}
	if cfg.OutputFormat != "text" && cfg.OutputFormat != "json" {
		return nil, fmt.Errorf("invalid output format %q: must be 'text' or 'json'", cfg.OutputFormat)
	}
	if cfg.ExportFormat == "" {
		cfg.ExportFormat = "csv"
	}
	if cfg.ExportFormat != "csv" && cfg.ExportFormat != "json" {
		return nil, fmt.Errorf("invalid export format %q: must be 'csv' or 'json'", cfg.ExportFormat)
	}
	return &cfg, nil
}
