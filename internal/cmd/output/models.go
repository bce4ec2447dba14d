package output

import (
	"io"

	"github.com/agentstation/kolmap/internal/cmd/table"
)

// Write formats data to w. Table formats render the table built by toTable;
// other formats encode data itself.
func Write(w io.Writer, format Format, data any, toTable func(wide bool) table.Data) error {
	formatter := NewFormatter(format)

	var outputData any
	switch format {
	case FormatTable, FormatWide, "":
		outputData = toTable(format == FormatWide)
	default:
		outputData = data
	}

	return formatter.Format(w, outputData)
}
