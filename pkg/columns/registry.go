package columns

import (
	"maps"
	"slices"

	"github.com/agentstation/kolmap/pkg/table"
)

// Registry holds the priority-ordered candidate header names per canonical
// field and table kind.
type Registry struct {
	candidates map[table.Kind]map[table.Field][]string
}

// DefaultRegistry returns the candidate lists used by deployments so far.
func DefaultRegistry() *Registry {
	return &Registry{candidates: map[table.Kind]map[table.Field][]string{
		table.KindMaster: {
			table.FieldName:             {"Name"},
			table.FieldArea:             {"Area"},
			table.FieldCountry:          {"Country"},
			table.FieldKOLID:            {"KOL_ID", "ID", "No"},
			table.FieldNotionLink:       {"Notion", "Link", "Notion Link", "Notion_Link"},
			table.FieldPDFLink:          {"PDF_Link", "Google_Sheet_Link", "PDF", "Sheet", "Drive", "File"},
			table.FieldDeliveredScanner: {"Delivered Scanner", "Scanner", "Device"},
			table.FieldSerialNo:         {"Serial No", "Serial", "SN"},
			table.FieldLatitude:         {"lat", "latitude", "Latitude"},
			table.FieldLongitude:        {"lon", "longitude", "Longitude"},
			table.FieldHospital:         {"Hospital", "Affiliation"},
			table.FieldPhoto:            {"Photo", "Image", "Picture", "Profile"},
		},
		table.KindContract: {
			table.FieldName:          {"Name"},
			table.FieldContractStart: {"Contract_Start"},
			table.FieldContractEnd:   {"Contract_End"},
			table.FieldTimes:         {"Times", "Time", "Contract Type"},
		},
		table.KindActivity: {
			table.FieldName:     {"Name"},
			table.FieldDate:     {"Date"},
			table.FieldTask:     {"Task"},
			table.FieldActivity: {"Activity", "Details"},
			table.FieldStatus:   {"Status"},
			table.FieldDelayed:  {"Delayed"},
			table.FieldSource:   {"Source", "Evidence"},
		},
	}}
}

// Candidates returns a copy of the candidate list for a field; a field with
// no registered list falls back to its own canonical name.
func (r *Registry) Candidates(kind table.Kind, field table.Field) []string {
	if c, ok := r.candidates[kind][field]; ok {
		return slices.Clone(c)
	}
	return []string{string(field)}
}

// WithCandidates returns a copy of the registry where field's candidates are
// replaced. The receiver is not modified.
func (r *Registry) WithCandidates(kind table.Kind, field table.Field, candidates ...string) *Registry {
	next := &Registry{candidates: make(map[table.Kind]map[table.Field][]string, len(r.candidates))}
	for k, fields := range r.candidates {
		next.candidates[k] = maps.Clone(fields)
	}
	if next.candidates[kind] == nil {
		next.candidates[kind] = make(map[table.Field][]string)
	}
	next.candidates[kind][field] = slices.Clone(candidates)
	return next
}

// ResolveField resolves the source header for one canonical field.
func (r *Registry) ResolveField(kind table.Kind, field table.Field, headers []string) (string, bool) {
	return Resolve(headers, r.Candidates(kind, field))
}
