package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"

	"github.com/agentstation/kolmap/pkg/errors"
)

func TestClassify(t *testing.T) {
	var syntaxErr error = &json.SyntaxError{Offset: 3}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unauthorized", &googleapi.Error{Code: http.StatusUnauthorized}, errors.ErrUnauthorized},
		{"forbidden", &googleapi.Error{Code: http.StatusForbidden}, errors.ErrUnauthorized},
		{"missing spreadsheet", &googleapi.Error{Code: http.StatusNotFound}, errors.ErrNotConfigured},
		{"bad range", fmt.Errorf("get: %w", &googleapi.Error{Code: http.StatusBadRequest}), errors.ErrNotConfigured},
		{"server error", &googleapi.Error{Code: http.StatusServiceUnavailable}, errors.ErrSourceUnavailable},
		{"decode", syntaxErr, errors.ErrMalformedResponse},
		{"network", errors.New("connection refused"), errors.ErrSourceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify("sheets", tt.err)
			assert.ErrorIs(t, err, tt.want)

			var serr *errors.SourceError
			assert.True(t, errors.As(err, &serr))
			assert.Equal(t, "sheets", serr.Source)
		})
	}
}

func TestClassifyPassesThrough(t *testing.T) {
	assert.NoError(t, Classify("drive", nil))
	assert.Equal(t, context.DeadlineExceeded, Classify("drive", context.DeadlineExceeded))

	already := errors.NewSourceError("xlsx", errors.SourceKindMalformed, errors.New("bad"))
	assert.Same(t, already, Classify("drive", already))
}
