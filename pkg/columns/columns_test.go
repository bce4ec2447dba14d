package columns_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/kolmap/pkg/columns"
	"github.com/agentstation/kolmap/pkg/table"
)

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"  Latitude (deg) ":   "latitude_deg",
		"Contract End":        "contract_end",
		"Warning/Delayed":     "warning_delayed",
		"KOL_ID":              "kol_id",
		"":                    "",
		"Serial No (Scanner)": "serial_no_scanner",
	}
	for in, want := range tests {
		assert.Equal(t, want, columns.Normalize(in), in)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		headers    []string
		candidates []string
		want       string
		found      bool
	}{
		{
			name:       "padded header with unit",
			headers:    []string{"Name", "  Latitude (deg) "},
			candidates: []string{"lat", "latitude"},
			want:       "  Latitude (deg) ",
			found:      true,
		},
		{
			name:       "case and separators differ",
			headers:    []string{"contract end"},
			candidates: []string{"Contract_End"},
			want:       "contract end",
			found:      true,
		},
		{
			name:       "earlier header beats higher priority candidate",
			headers:    []string{"Drive Folder", "PDF_Link"},
			candidates: []string{"PDF_Link", "Drive"},
			want:       "Drive Folder",
			found:      true,
		},
		{
			name:       "no match",
			headers:    []string{"Name", "Area"},
			candidates: []string{"Country"},
			found:      false,
		},
		{
			name:       "empty candidates never match",
			headers:    []string{"Name"},
			candidates: []string{"", "   "},
			found:      false,
		},
		{
			name:       "no headers",
			candidates: []string{"Name"},
			found:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := columns.Resolve(tt.headers, tt.candidates)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Whenever some header contains a candidate after normalization, Resolve
// must return a header that does.
func TestResolveNeverMissesTrueMatch(t *testing.T) {
	headerPool := []string{"Name", "KOL Name", "Area (Region)", "Country/Region", "Notion Link", "PDF", "Lat", "longitude", "Date", "Status", "  Delayed  ", "Evidence URL"}
	candidatePool := []string{"name", "Region", "link", "lat", "Longitude", "Delayed", "Source", "Evidence", "Times"}

	for i := range headerPool {
		for j := range candidatePool {
			headers := append(append([]string{}, headerPool[i:]...), headerPool[:i]...)
			candidates := append(append([]string{}, candidatePool[j:]...), candidatePool[:j]...)[:3]

			expectMatch := false
			for _, h := range headers {
				for _, c := range candidates {
					if strings.Contains(columns.Normalize(h), columns.Normalize(c)) {
						expectMatch = true
					}
				}
			}

			got, ok := columns.Resolve(headers, candidates)
			assert.Equal(t, expectMatch, ok, "headers=%v candidates=%v", headers, candidates)
			if ok {
				matched := false
				for _, c := range candidates {
					matched = matched || strings.Contains(columns.Normalize(got), columns.Normalize(c))
				}
				assert.True(t, matched)
			}
		}
	}
}

func TestRegistry(t *testing.T) {
	reg := columns.DefaultRegistry()

	got, ok := reg.ResolveField(table.KindMaster, table.FieldKOLID, []string{"Name", "No."})
	assert.True(t, ok)
	assert.Equal(t, "No.", got)

	assert.Equal(t, []string{"Unknown_Field"}, reg.Candidates(table.KindMaster, "Unknown_Field"))

	custom := reg.WithCandidates(table.KindActivity, table.FieldDate, "Due")
	_, ok = custom.ResolveField(table.KindActivity, table.FieldDate, []string{"Due Day"})
	assert.True(t, ok)
	_, ok = reg.ResolveField(table.KindActivity, table.FieldDate, []string{"Due Day"})
	assert.False(t, ok, "original registry is unchanged")

	c := reg.Candidates(table.KindContract, table.FieldTimes)
	c[0] = "mutated"
	assert.Equal(t, "Times", reg.Candidates(table.KindContract, table.FieldTimes)[0])
}

func TestSuggest(t *testing.T) {
	headers := []string{"Region", "Contract - End", "Contract Begin"}
	got := columns.Suggest(headers, []string{"Contract_End"}, 2)
	assert.Equal(t, []string{"Contract - End"}, got)

	assert.Empty(t, columns.Suggest(headers, []string{"zzz"}, 0))
}
