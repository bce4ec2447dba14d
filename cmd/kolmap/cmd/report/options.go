package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/kolmap/internal/cmd/output"
	cmdtable "github.com/agentstation/kolmap/internal/cmd/table"
	"github.com/agentstation/kolmap/pkg/pipeline"
	"github.com/agentstation/kolmap/pkg/report"
)

// Choices lists the values the report filters accept.
type Choices struct {
	Years      []int    `json:"years" yaml:"years"`
	Areas      []string `json:"areas" yaml:"areas"`
	TaskTags   []string `json:"task_tags" yaml:"task_tags"`
	EntityTags []string `json:"entity_tags" yaml:"entity_tags"`
}

func newOptionsCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the years, areas and tags present in the data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := app.Load(cmd.Context())
			if err != nil {
				return err
			}
			return PrintChoices(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), BuildChoices(result))
		},
	}
}

// BuildChoices collects the filter values of result.
func BuildChoices(result *pipeline.Result) Choices {
	return Choices{
		Years:      report.Years(result.Activity),
		Areas:      report.Areas(result.Master),
		TaskTags:   report.TaskTags(result.Activity),
		EntityTags: report.EntityTags(result.Master),
	}
}

// PrintChoices writes the choices.
func PrintChoices(w io.Writer, format output.Format, c Choices) error {
	years := make([]string, len(c.Years))
	for i, y := range c.Years {
		years[i] = strconv.Itoa(y)
	}
	return output.Write(w, format, c, func(bool) cmdtable.Data {
		return cmdtable.Data{
			Headers: []string{"Filter", "Values"},
			Rows: [][]string{
				{"Years", cmdtable.OrDash(strings.Join(years, ", "))},
				{"Areas", cmdtable.OrDash(strings.Join(c.Areas, ", "))},
				{"Task tags", cmdtable.OrDash(strings.Join(c.TaskTags, ", "))},
				{"KOL tags", cmdtable.OrDash(strings.Join(c.EntityTags, ", "))},
			},
		}
	})
}
