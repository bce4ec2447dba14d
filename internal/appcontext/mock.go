package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/kolmap/internal/auth"
	"github.com/agentstation/kolmap/pkg/pipeline"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	LoadFunc         func(ctx context.Context) (*pipeline.Result, error)
	LoaderFunc       func(ctx context.Context) (*pipeline.Loader, error)
	AuthStatusFunc   func() *auth.Status
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Load returns a result using the mock function or an empty result.
func (m *Mock) Load(ctx context.Context) (*pipeline.Result, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return &pipeline.Result{}, nil
}

// Loader returns a loader using the mock function or nil.
func (m *Mock) Loader(ctx context.Context) (*pipeline.Loader, error) {
	if m.LoaderFunc != nil {
		return m.LoaderFunc(ctx)
	}
	return nil, nil
}

// AuthStatus returns a status using the mock function or an optional state.
func (m *Mock) AuthStatus() *auth.Status {
	if m.AuthStatusFunc != nil {
		return m.AuthStatusFunc()
	}
	return &auth.Status{State: auth.StateOptional}
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "json".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "json"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
