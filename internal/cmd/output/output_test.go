package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/kolmap/internal/cmd/table"
)

type sample struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func toTable(wide bool) table.Data {
	headers := []string{"Name", "Count"}
	if wide {
		headers = append(headers, "Extra")
		return table.Data{Headers: headers, Rows: [][]string{{"Dr. Kim", "2", "x"}}}
	}
	return table.Data{
		Headers:         headers,
		Rows:            [][]string{{"Dr. Kim", "2"}},
		ColumnAlignment: []table.Align{table.AlignLeft, table.AlignRight},
	}
}

func TestWrite(t *testing.T) {
	data := []sample{{Name: "Dr. Kim", Count: 2}}

	tests := []struct {
		format   Format
		contains []string
	}{
		{FormatTable, []string{"NAME", "DR. KIM"}},
		{FormatWide, []string{"EXTRA", "DR. KIM"}},
		{FormatJSON, []string{`"NAME": "DR. KIM"`, `"COUNT": 2`}},
		{FormatYAML, []string{"NAME: DR. KIM", "COUNT: 2"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, tt.format, data, toTable))
			// Table headers may be upper-cased by the renderer.
			out := strings.ToUpper(buf.String())
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, map[string]int{"a": 1}))
	assert.JSONEq(t, `{"a":1}`, buf.String())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" YAML ")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("csv")
	assert.Error(t, err)

	assert.Equal(t, FormatJSON, DetectFormat("json"))
}
