// Package emoji provides the status symbols of CLI output.
package emoji

import "github.com/agentstation/kolmap/internal/auth"

// Status symbols.
const (
	// Success marks configured or passing states.
	Success = "✓"
	// Error marks missing required configuration.
	Error = "✗"
	// Warning marks invalid or suspicious configuration.
	Warning = "!"
	// Optional marks configuration nothing currently needs.
	Optional = "-"
	// Unknown marks an unrecognized state.
	Unknown = "?"
)

// ForAuth returns the symbol of a credential state.
func ForAuth(state auth.State) string {
	switch state {
	case auth.StateConfigured:
		return Success
	case auth.StateMissing:
		return Error
	case auth.StateInvalid:
		return Warning
	case auth.StateOptional:
		return Optional
	}
	return Unknown
}
