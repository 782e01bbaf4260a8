package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/fieldreg/internal/config"
	"github.com/vk/fieldreg/internal/ctxlog"
	"github.com/vk/fieldreg/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	inR     io.Reader
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	catalog *registry.Catalog
}

// NewApp loads every declaration under the configured catalog paths with
// loaders and builds the registry catalog. Logs go to logW; command output
// goes to outW.
func NewApp(inR io.Reader, outW, logW io.Writer, cfg *Config, loaders ...config.Loader) (*App, error) {
	logger := newLogger(cfg.Level, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model := &config.Model{}
	for _, loader := range loaders {
		m, err := loader.Load(ctx, cfg.CatalogPaths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load declarations: %w", err)
		}
		if err := model.Merge(m); err != nil {
			return nil, fmt.Errorf("failed to load declarations: %w", err)
		}
	}
	logger.Debug("Declarations loaded and translated into unified model.", "registries", len(model.Registries))
	if len(model.Registries) == 0 {
		logger.Warn("No registries declared under catalog paths.", "paths", cfg.CatalogPaths)
	}

	catalog, err := config.BuildCatalog(ctx, model, cfg.Strict)
	if err != nil {
		return nil, err
	}

	return &App{
		inR:     inR,
		outW:    outW,
		logger:  logger,
		config:  cfg,
		catalog: catalog,
	}, nil
}

// Catalog returns the application's registries. This is primarily for testing.
func (a *App) Catalog() *registry.Catalog {
	return a.catalog
}
