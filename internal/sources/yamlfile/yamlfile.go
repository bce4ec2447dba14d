// Package yamlfile reads raw tables from a YAML dataset file.
//
// A dataset lists each table under its tab name:
//
//	tables:
//	  kol_master:
//	    headers: [Name, Area]
//	    rows:
//	      - {Name: Dr. Kim, Area: Europe}
//
// Headers are optional; without them the header order is derived from the
// rows.
package yamlfile

import (
	"context"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/kolmap/pkg/errors"
	"github.com/agentstation/kolmap/pkg/table"
)

// SourceName identifies this source in errors and logs.
const SourceName = "yaml"

// Dataset is the decoded file.
type Dataset struct {
	Tables map[string]Table `yaml:"tables"`
}

// Table is one raw table of a dataset.
type Table struct {
	Headers []string         `yaml:"headers,omitempty"`
	Rows    []map[string]any `yaml:"rows"`
}

// Source is a TableSource reading a dataset on every fetch.
type Source struct {
	path string
	read func() ([]byte, error)
}

// New creates a source for the file at path.
func New(path string) *Source {
	return &Source{
		path: path,
		read: func() ([]byte, error) { return os.ReadFile(path) }, // #nosec G304 -- configured dataset path
	}
}

// NewFromFS creates a source for path inside fsys.
func NewFromFS(fsys fs.FS, path string) *Source {
	return &Source{
		path: path,
		read: func() ([]byte, error) { return fs.ReadFile(fsys, path) },
	}
}

// Name returns the source name.
func (s *Source) Name() string { return SourceName }

// FetchTable returns the table stored under name.
func (s *Source) FetchTable(ctx context.Context, name string) (*table.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ds, err := s.Load()
	if err != nil {
		return nil, err
	}
	t, ok := ds.Tables[name]
	if !ok {
		return nil, errors.NewNotFoundError("table", name)
	}

	raw := table.NewRaw(t.Headers)
	for _, r := range t.Rows {
		row := make(table.Row, len(r))
		for k, v := range r {
			row[k] = v
		}
		raw.Rows = append(raw.Rows, row)
	}
	raw.Headers = raw.HeaderList()
	return raw, nil
}

// Load reads and decodes the whole dataset.
func (s *Source) Load() (*Dataset, error) {
	data, err := s.read()
	if err != nil {
		return nil, errors.NewSourceError(SourceName, errors.SourceKindUnavailable, err)
	}
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, errors.NewSourceError(SourceName, errors.SourceKindMalformed,
			errors.WrapParse("yaml", s.path, err))
	}
	return &ds, nil
}
