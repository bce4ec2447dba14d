// Package auth resolves the Google credentials used by the Sheets and Drive
// sources and reports on their state.
package auth

import "github.com/agentstation/kolmap/internal/auth/adc"

// State represents the credential state.
type State int

const (
	// StateConfigured means credentials are configured.
	StateConfigured State = iota
	// StateMissing means required credentials are missing.
	StateMissing
	// StateInvalid means credentials are found but malformed or invalid.
	StateInvalid
	// StateOptional means no configured source needs credentials.
	StateOptional
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateConfigured:
		return "configured"
	case StateMissing:
		return "missing"
	case StateInvalid:
		return "invalid"
	case StateOptional:
		return "optional"
	}
	return "unknown"
}

// Status represents credential status for the configured sources.
type Status struct {
	State   State
	Summary string       // Brief one-line summary
	Details *adc.Details // nil when no credentials were inspected
}

// Config selects the credentials. Inline JSON wins over a file; with neither
// set, application default credentials are used.
type Config struct {
	CredentialsFile string
	CredentialsJSON string
}
