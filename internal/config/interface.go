package config

import "context"

// Loader is the interface for a format-specific declaration loader.
type Loader interface {
	// Load reads every declaration file it recognises under paths and
	// translates them into the format-agnostic model. Paths that do not
	// exist are skipped.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
