// Package sources holds what the table and link sources share: the mapping
// of Google API failures onto source error kinds.
package sources

import (
	"context"
	"encoding/json"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/agentstation/kolmap/pkg/errors"
)

// Classify wraps err as a SourceError of the matching kind. Context errors
// are returned unchanged so callers can tell a timeout from a failure.
func Classify(source string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return errors.NewSourceError(source, errors.SourceKindAuth, err)
		case http.StatusBadRequest, http.StatusNotFound:
			return errors.NewSourceError(source, errors.SourceKindConfig, err)
		}
		return errors.NewSourceError(source, errors.SourceKindUnavailable, err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return errors.NewSourceError(source, errors.SourceKindMalformed, err)
	}

	var serr *errors.SourceError
	if errors.As(err, &serr) {
		return err
	}
	return errors.NewSourceError(source, errors.SourceKindUnavailable, err)
}
