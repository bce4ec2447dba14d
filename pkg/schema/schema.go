// Package schema normalizes raw tables into canonical columns.
//
// Each canonical field is resolved to a source header through the column
// registry and its cells are coerced to the field's type. Fields with no
// matching header are filled with a sentinel: 0 for the numeric identifier,
// "-" for the contract type, absent for everything else. The raw table is
// never modified.
package schema

import (
	"github.com/agentstation/kolmap/pkg/columns"
	"github.com/agentstation/kolmap/pkg/table"
)

// suggestionLimit caps the near-miss headers reported per missing field.
const suggestionLimit = 3

type fieldRule struct {
	parse    func(any) table.Value
	sentinel table.Value
}

var (
	textRule = fieldRule{parse: table.ParseText}
	dateRule = fieldRule{parse: table.ParseDate}
	geoRule  = fieldRule{parse: table.ParseFloat}
)

func ruleFor(field table.Field) fieldRule {
	switch field {
	case table.FieldKOLID:
		return fieldRule{parse: parseID, sentinel: table.Int(0)}
	case table.FieldLatitude, table.FieldLongitude:
		return geoRule
	case table.FieldContractStart, table.FieldContractEnd, table.FieldDate:
		return dateRule
	case table.FieldTimes:
		return fieldRule{parse: table.ParseText, sentinel: table.Text("-")}
	}
	return textRule
}

// parseID coerces identifiers; anything non-numeric becomes 0.
func parseID(raw any) table.Value {
	v := table.ParseInt(raw)
	if v.IsAbsent() {
		return table.Int(0)
	}
	return v
}

// Resolution records how the canonical fields of one table were found.
type Resolution struct {
	Kind        table.Kind
	Sources     map[table.Field]string
	Missing     []table.Field
	Suggestions map[table.Field][]string
}

// Source returns the header a field was read from.
func (r Resolution) Source(field table.Field) (string, bool) {
	h, ok := r.Sources[field]
	return h, ok
}

// Normalizer applies a column registry to raw tables.
type Normalizer struct {
	registry *columns.Registry
}

// NewNormalizer creates a normalizer; a nil registry uses the default one.
func NewNormalizer(registry *columns.Registry) *Normalizer {
	if registry == nil {
		registry = columns.DefaultRegistry()
	}
	return &Normalizer{registry: registry}
}

// Normalize uses the default registry.
func Normalize(raw *table.Raw, kind table.Kind) (*table.Normalized, Resolution) {
	return NewNormalizer(nil).Normalize(raw, kind)
}

// Normalize builds the canonical table of the given kind from raw.
func (n *Normalizer) Normalize(raw *table.Raw, kind table.Kind) (*table.Normalized, Resolution) {
	fields := table.Fields(kind)
	headers := raw.HeaderList()

	res := Resolution{
		Kind:        kind,
		Sources:     make(map[table.Field]string, len(fields)),
		Suggestions: make(map[table.Field][]string),
	}
	// A header is renamed to exactly one field: when several fields
	// resolve to it, the latest field in canonical order keeps it.
	claimedBy := make(map[string]table.Field, len(fields))
	for _, f := range fields {
		if h, ok := n.registry.ResolveField(kind, f, headers); ok {
			claimedBy[h] = f
		}
	}
	for h, f := range claimedBy {
		res.Sources[f] = h
	}
	for _, f := range fields {
		if _, ok := res.Sources[f]; ok {
			continue
		}
		res.Missing = append(res.Missing, f)
		if s := columns.Suggest(headers, n.registry.Candidates(kind, f), suggestionLimit); len(s) > 0 {
			res.Suggestions[f] = s
		}
	}

	out := &table.Normalized{
		Kind:    kind,
		Columns: fields,
		Records: make([]table.Record, 0, raw.Len()),
	}
	if raw == nil {
		return out, res
	}

	for _, row := range raw.Rows {
		rec := make(table.Record, len(fields))
		for _, f := range fields {
			rule := ruleFor(f)
			h, ok := res.Sources[f]
			if !ok {
				rec[f] = rule.sentinel
				continue
			}
			rec[f] = rule.parse(row[h])
		}
		out.Records = append(out.Records, rec)
	}
	return out, res
}
