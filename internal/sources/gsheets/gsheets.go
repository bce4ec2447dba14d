// Package gsheets reads the raw tables from the tabs of a Google
// spreadsheet.
package gsheets

import (
	"context"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/agentstation/kolmap/internal/sources"
	"github.com/agentstation/kolmap/pkg/errors"
	"github.com/agentstation/kolmap/pkg/logging"
	"github.com/agentstation/kolmap/pkg/table"
)

// SourceName identifies this source in errors and logs.
const SourceName = "sheets"

// Render options: numbers stay numbers and dates arrive as serial numbers,
// which the normalizer reads as spreadsheet dates.
const (
	valueRender    = "UNFORMATTED_VALUE"
	dateTimeRender = "SERIAL_NUMBER"
)

// Source is a TableSource backed by one spreadsheet.
type Source struct {
	spreadsheetID string
	svc           *sheets.Service
}

// New creates a source for spreadsheetID. opts carry credentials and, in
// tests, the endpoint.
func New(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*Source, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.NewConfigError(SourceName, "spreadsheet id is required", nil)
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.NewSourceError(SourceName, errors.SourceKindAuth, err)
	}
	return &Source{spreadsheetID: spreadsheetID, svc: svc}, nil
}

// Name returns the source name.
func (s *Source) Name() string { return SourceName }

// FetchTable reads every row of the tab named name. The first row is the
// header row.
func (s *Source) FetchTable(ctx context.Context, name string) (*table.Raw, error) {
	logger := logging.FromContext(ctx)

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, quoteRange(name)).
		ValueRenderOption(valueRender).
		DateTimeRenderOption(dateTimeRender).
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		err = sources.Classify(SourceName, err)
		if errors.Is(err, errors.ErrNotConfigured) {
			return nil, errors.NewNotFoundError("tab", name)
		}
		return nil, err
	}

	raw := toRaw(resp.Values)
	logger.Debug().
		Str("tab", name).
		Int("rows", raw.Len()).
		Msg("Read spreadsheet tab")
	return raw, nil
}

// quoteRange turns a tab name into an A1 range covering the whole tab.
func quoteRange(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// toRaw converts a values grid into a raw table. Rows shorter than the
// header leave the trailing cells unset, and blank rows are skipped.
func toRaw(values [][]any) *table.Raw {
	if len(values) == 0 {
		return table.NewRaw(nil)
	}

	headers := make([]string, 0, len(values[0]))
	for _, h := range values[0] {
		headers = append(headers, strings.TrimSpace(table.ParseText(h).TextValue()))
	}

	raw := table.NewRaw(headers)
	for _, cells := range values[1:] {
		row := make(table.Row, len(headers))
		for i, cell := range cells {
			if i >= len(headers) || headers[i] == "" || blank(cell) {
				continue
			}
			row[headers[i]] = cell
		}
		if len(row) > 0 {
			raw.Rows = append(raw.Rows, row)
		}
	}
	return raw
}

func blank(cell any) bool {
	switch v := cell.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	}
	return false
}
