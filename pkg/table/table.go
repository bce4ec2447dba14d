// Package table defines the raw and normalized tabular shapes that flow
// through the kolmap pipeline.
//
// A Raw table is what a source hands over: ordered headers of arbitrary
// spelling and rows keyed by those headers. A Normalized table carries only
// canonical fields, each cell a typed Value.
package table

import (
	"slices"
	"sort"
)

// Kind identifies which of the three inputs a table represents.
type Kind string

const (
	// KindMaster is the entity (KOL) master table.
	KindMaster Kind = "master"
	// KindContract is the contract table.
	KindContract Kind = "contract"
	// KindActivity is the activity log table.
	KindActivity Kind = "activity"
)

// Kinds lists the table kinds in pipeline order.
func Kinds() []Kind {
	return []Kind{KindMaster, KindContract, KindActivity}
}

// Row maps a source header to its raw cell value. Values are strings,
// numbers, bools, time.Time or nil.
type Row map[string]any

// Raw is an ordered sequence of rows with the header order of the source.
type Raw struct {
	Headers []string
	Rows    []Row
}

// NewRaw creates a raw table. When headers is empty the header order is
// derived from the rows.
func NewRaw(headers []string, rows ...Row) *Raw {
	return &Raw{Headers: headers, Rows: rows}
}

// HeaderList returns the header order. Headers missing from r.Headers but
// present in rows are appended in sorted order so the result is stable.
func (r *Raw) HeaderList() []string {
	if r == nil {
		return nil
	}
	headers := slices.Clone(r.Headers)
	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		seen[h] = true
	}

	var extra []string
	for _, row := range r.Rows {
		for h := range row {
			if !seen[h] {
				seen[h] = true
				extra = append(extra, h)
			}
		}
	}
	sort.Strings(extra)
	return append(headers, extra...)
}

// Len returns the number of rows.
func (r *Raw) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// Record is one normalized row: every canonical field of the table kind is
// present, absent cells hold an absent Value.
type Record map[Field]Value

// Get returns the value of f, absent when missing.
func (r Record) Get(f Field) Value {
	return r[f]
}

// Normalized is a table of canonical columns in fixed order.
type Normalized struct {
	Kind    Kind
	Columns []Field
	Records []Record
}

// Len returns the number of records.
func (n *Normalized) Len() int {
	if n == nil {
		return 0
	}
	return len(n.Records)
}
