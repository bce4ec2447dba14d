// Package appcontext provides the shared application context interface
// used by all commands. Commands depend on this interface rather than on
// the concrete App so they can be tested with Mock.
package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/kolmap/internal/auth"
	"github.com/agentstation/kolmap/pkg/pipeline"
)

// Interface defines the application context interface that commands need.
type Interface interface {
	// Load fetches the three tables from the configured source and runs
	// the pipeline over them.
	Load(ctx context.Context) (*pipeline.Result, error)

	// Loader returns the loader built from configuration, for commands
	// that need the raw tables.
	Loader(ctx context.Context) (*pipeline.Loader, error)

	// AuthStatus reports on the Google credentials of the configured
	// sources. Local checks only.
	AuthStatus() *auth.Status

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
