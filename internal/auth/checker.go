package auth

import (
	"github.com/agentstation/kolmap/internal/auth/adc"
)

// Check reports on the credentials described by cfg. needed tells whether
// any configured source requires Google credentials.
// Performs local checks only - no network calls are made.
func Check(cfg Config, needed bool) *Status {
	if cfg.CredentialsJSON != "" {
		if _, err := adc.Parse([]byte(cfg.CredentialsJSON)); err != nil {
			return &Status{State: StateInvalid, Summary: "inline credentials invalid: " + err.Error()}
		}
		return &Status{State: StateConfigured, Summary: "inline credentials"}
	}

	details := adc.BuildDetails(cfg.CredentialsFile)
	var state State
	switch details.State {
	case adc.StateConfigured:
		state = StateConfigured
	case adc.StateMissing:
		state = StateMissing
		if !needed {
			state = StateOptional
		}
	default:
		state = StateInvalid
	}

	return &Status{
		State:   state,
		Summary: adc.FormatBrief(details),
		Details: details,
	}
}
