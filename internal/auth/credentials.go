package auth

import (
	"context"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/agentstation/kolmap/pkg/errors"
)

// Read-only scopes of the Sheets and Drive sources.
const (
	ScopeSheetsReadonly = "https://www.googleapis.com/auth/spreadsheets.readonly"
	ScopeDriveReadonly  = "https://www.googleapis.com/auth/drive.readonly"
)

// Credentials resolves cfg into Google credentials for scopes.
func Credentials(ctx context.Context, cfg Config, scopes ...string) (*google.Credentials, error) {
	var data []byte
	switch {
	case cfg.CredentialsJSON != "":
		data = []byte(cfg.CredentialsJSON)
	case cfg.CredentialsFile != "":
		b, err := os.ReadFile(cfg.CredentialsFile) // #nosec G304 -- configured credential file
		if err != nil {
			return nil, errors.NewConfigError("credentials", "cannot read credentials file", err)
		}
		data = b
	default:
		creds, err := google.FindDefaultCredentials(ctx, scopes...)
		if err != nil {
			return nil, errors.NewSourceError("google", errors.SourceKindAuth, err)
		}
		return creds, nil
	}

	creds, err := google.CredentialsFromJSON(ctx, data, scopes...)
	if err != nil {
		return nil, errors.NewSourceError("google", errors.SourceKindAuth, err)
	}
	return creds, nil
}

// ClientOptions returns the client options that authenticate a Google API
// client with cfg.
func ClientOptions(ctx context.Context, cfg Config, scopes ...string) ([]option.ClientOption, error) {
	creds, err := Credentials(ctx, cfg, scopes...)
	if err != nil {
		return nil, err
	}
	return []option.ClientOption{option.WithCredentials(creds)}, nil
}
