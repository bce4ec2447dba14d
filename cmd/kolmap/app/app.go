// Package app provides the application context and dependency management
// for the kolmap CLI: configuration, logging and the table loader.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/kolmap/internal/appcontext"
	"github.com/agentstation/kolmap/internal/auth"
	"github.com/agentstation/kolmap/internal/cache"
	"github.com/agentstation/kolmap/pkg/errors"
	"github.com/agentstation/kolmap/pkg/logging"
	"github.com/agentstation/kolmap/pkg/pipeline"
)

// App represents the kolmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Loader (lazy-initialized, singleton)
	mu     sync.Mutex
	loader *pipeline.Loader
	caches []*cache.Cache
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "failed to load config", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Loader returns the loader, building it from configuration on first use.
func (a *App) Loader(ctx context.Context) (*pipeline.Loader, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.loader != nil {
		return a.loader, nil
	}

	loader, err := a.buildLoader(logging.WithLogger(ctx, a.logger))
	if err != nil {
		return nil, err
	}
	a.loader = loader
	return loader, nil
}

// Load fetches the tables and runs the pipeline.
func (a *App) Load(ctx context.Context) (*pipeline.Result, error) {
	loader, err := a.Loader(ctx)
	if err != nil {
		return nil, err
	}
	return loader.Load(logging.WithLogger(ctx, a.logger))
}

// AuthStatus reports on the Google credentials the configuration needs.
func (a *App) AuthStatus() *auth.Status {
	return auth.Check(a.config.Auth(), a.config.NeedsGoogle())
}

// Shutdown drops cached tables and listings.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, c := range a.caches {
		c.Invalidate()
	}
	a.caches = nil
	a.loader = nil
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return &errors.ValidationError{Field: "config", Message: "cannot be nil"}
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithLoader sets a prebuilt loader (useful for testing).
func WithLoader(loader *pipeline.Loader) Option {
	return func(a *App) error {
		a.loader = loader
		return nil
	}
}

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)
