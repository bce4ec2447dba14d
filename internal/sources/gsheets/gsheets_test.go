package gsheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/agentstation/kolmap/pkg/errors"
	"github.com/agentstation/kolmap/pkg/table"
)

// newTestSource serves values for known tabs and the given status otherwise.
func newTestSource(t *testing.T, tabs map[string][][]any, status int) (*Source, *[]string) {
	t.Helper()

	var ranges []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idx := strings.Index(r.URL.Path, "/values/")
		require.NotEqual(t, -1, idx)
		rng := r.URL.Path[idx+len("/values/"):]
		ranges = append(ranges, rng)

		assert.Equal(t, valueRender, r.URL.Query().Get("valueRenderOption"))
		assert.Equal(t, dateTimeRender, r.URL.Query().Get("dateTimeRenderOption"))

		name := strings.Trim(rng, "'")
		values, ok := tabs[name]
		if !ok {
			w.WriteHeader(status)
			_, _ = fmt.Fprintf(w, `{"error":{"code":%d,"message":"failed"}}`, status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"range":          rng,
			"majorDimension": "ROWS",
			"values":         values,
		})
	}))
	t.Cleanup(server.Close)

	src, err := New(context.Background(), "sheet-123",
		option.WithEndpoint(server.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)
	return src, &ranges
}

func TestFetchTable(t *testing.T) {
	src, ranges := newTestSource(t, map[string][][]any{
		"kol_master": {
			{"Name", " Area ", "KOL_ID", "Contract_End"},
			{"Dr. Kim", "Europe", 12, 45306},
			{"", "   "},
			{"Dr. Lee", "LATAM"},
		},
	}, http.StatusNotFound)

	raw, err := src.FetchTable(context.Background(), "kol_master")
	require.NoError(t, err)
	assert.Equal(t, "sheets", src.Name())
	assert.Equal(t, []string{"Name", "Area", "KOL_ID", "Contract_End"}, raw.Headers)
	require.Equal(t, 2, raw.Len())

	assert.Equal(t, "Dr. Kim", raw.Rows[0]["Name"])
	assert.InDelta(t, 12, raw.Rows[0]["KOL_ID"], 0)
	end, ok := table.ParseDate(raw.Rows[0]["Contract_End"]).Time()
	require.True(t, ok)
	assert.Equal(t, "2024-01-15", end.Format("2006-01-02"))

	assert.NotContains(t, raw.Rows[1], "KOL_ID")
	assert.Equal(t, []string{"'kol_master'"}, *ranges)
}

func TestFetchTableEmptyTab(t *testing.T) {
	src, _ := newTestSource(t, map[string][][]any{"activity_log": nil}, http.StatusNotFound)

	raw, err := src.FetchTable(context.Background(), "activity_log")
	require.NoError(t, err)
	assert.Equal(t, 0, raw.Len())
}

func TestFetchTableErrors(t *testing.T) {
	src, _ := newTestSource(t, nil, http.StatusBadRequest)
	_, err := src.FetchTable(context.Background(), "missing")
	assert.True(t, errors.IsNotFound(err))

	src, _ = newTestSource(t, nil, http.StatusForbidden)
	_, err = src.FetchTable(context.Background(), "kol_master")
	assert.True(t, errors.IsUnauthorized(err))

	src, _ = newTestSource(t, nil, http.StatusInternalServerError)
	_, err = src.FetchTable(context.Background(), "kol_master")
	assert.True(t, errors.IsSourceUnavailable(err))
}

func TestNewRequiresSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), " ", option.WithoutAuthentication())
	assert.ErrorIs(t, err, errors.ErrNotConfigured)
}

func TestQuoteRange(t *testing.T) {
	assert.Equal(t, "'kol_master'", quoteRange("kol_master"))
	assert.Equal(t, "'KOL''s tab'", quoteRange("KOL's tab"))
}
