// Package xlsx reads raw tables from the worksheets of a local workbook.
package xlsx

import (
	"context"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/kolmap/pkg/errors"
	"github.com/agentstation/kolmap/pkg/table"
)

// SourceName identifies this source in logs and errors.
const SourceName = "xlsx"

// Source reads one worksheet per table. A workbook given by path is opened
// on every fetch so edits are picked up between loads.
type Source struct {
	path string
	open func() (*excelize.File, error)

	// mu serializes access to a shared in-memory workbook.
	mu sync.Mutex
}

// New creates a source over the workbook at path.
func New(path string) *Source {
	return &Source{
		path: path,
		open: func() (*excelize.File, error) { return excelize.OpenFile(path) },
	}
}

// NewFromReader creates a source over an in-memory workbook. The reader is
// consumed once.
func NewFromReader(r io.Reader) (*Source, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.WrapParse("xlsx", "", err)
	}
	return &Source{open: func() (*excelize.File, error) { return f, nil }}, nil
}

// Name implements pipeline.TableSource.
func (s *Source) Name() string {
	return SourceName
}

// FetchTable reads the worksheet called name. The first row holds the
// headers. Number cells are returned as float64, everything else as text.
func (s *Source) FetchTable(ctx context.Context, name string) (*table.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return nil, errors.NewSourceError(SourceName, errors.SourceKindUnavailable, err)
	}
	if s.path != "" {
		defer f.Close()
	}

	if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
		return nil, errors.NewNotFoundError("worksheet", name)
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.WrapParse("xlsx", s.path, err)
	}
	return toRaw(f, name, rows)
}

// Sheets lists the worksheet names of the workbook.
func (s *Source) Sheets() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return nil, errors.NewSourceError(SourceName, errors.SourceKindUnavailable, err)
	}
	if s.path != "" {
		defer f.Close()
	}
	return f.GetSheetList(), nil
}

// toRaw reads the first non-empty row as headers and the rows below it as
// data. Sheet row numbers are 1-based.
func toRaw(f *excelize.File, sheet string, rows [][]string) (*table.Raw, error) {
	start := slices.IndexFunc(rows, func(cells []string) bool { return !blank(cells) })
	if start < 0 {
		return table.NewRaw(nil), nil
	}

	headers := make([]string, len(rows[start]))
	for i, h := range rows[start] {
		headers[i] = strings.TrimSpace(h)
	}

	data := rows[start+1:]
	out := make([]table.Row, 0, len(data))
	for r, cells := range data {
		sheetRow := start + r + 2
		row := make(table.Row, len(headers))
		for c, h := range headers {
			if h == "" || c >= len(cells) || cells[c] == "" {
				continue
			}
			v, err := cellValue(f, sheet, c+1, sheetRow, cells[c])
			if err != nil {
				return nil, err
			}
			row[h] = v
		}
		if len(row) > 0 {
			out = append(out, row)
		}
	}
	return table.NewRaw(headers, out...), nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cellValue(f *excelize.File, sheet string, col, row int, raw string) (any, error) {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return nil, err
	}
	typ, err := f.GetCellType(sheet, axis)
	if err != nil {
		return nil, errors.WrapParse("xlsx", axis, err)
	}
	if typ == excelize.CellTypeNumber || typ == excelize.CellTypeUnset {
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n, nil
		}
	}
	return raw, nil
}
