// Package report provides the performance report commands.
package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/kolmap/internal/cmd/output"
	cmdtable "github.com/agentstation/kolmap/internal/cmd/table"
	"github.com/agentstation/kolmap/pkg/pipeline"
	"github.com/agentstation/kolmap/pkg/report"
)

// AppContext defines what the report commands need from the app.
type AppContext interface {
	Load(ctx context.Context) (*pipeline.Result, error)
	OutputFormat() string
	Logger() *zerolog.Logger
}

// Flags holds the period selection of the overview.
type Flags struct {
	Year  int
	Month string
	Area  string
	Tags  []string
}

// Overview is the structured form of the overview report.
type Overview struct {
	Summary report.Summary     `json:"summary" yaml:"summary"`
	Areas   report.AreaSummary `json:"areas" yaml:"areas"`
	Tasks   []report.TaskRow   `json:"tasks" yaml:"tasks"`
}

// now is replaced in tests.
var now = time.Now

// NewCommand creates the report command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "report",
		GroupID: "core",
		Short:   "Performance overview for a year, month and area",
		Long: `Report summarizes the activity of one period: active KOLs, tasks by
status, delayed and warning counts, KOLs per region, and the task list with
warnings and delays first.

Without --year the current year is used when it has activity, otherwise the
latest year with activity.`,
		Example: `  kolmap report
  kolmap report --year 2025 --month mar --area Europe
  kolmap report --tag Lecture -o json
  kolmap report kol "Dr. Alice Moreau"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := app.Load(cmd.Context())
			if err != nil {
				return err
			}
			period, err := flags.Period(result)
			if err != nil {
				return err
			}
			view := BuildOverview(result, period, flags.Tags)
			return PrintOverview(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), view)
		},
	}

	cmd.Flags().IntVar(&flags.Year, "year", 0, "Year to report (default: current or latest year)")
	cmd.Flags().StringVar(&flags.Month, "month", "", "Month to report: 1-12, a month name, or all")
	cmd.Flags().StringVar(&flags.Area, "area", "", "Only KOLs and activity of this area")
	cmd.Flags().StringSliceVarP(&flags.Tags, "tag", "t", nil, "Keep tasks whose displayed values contain any tag")

	cmd.AddCommand(newKOLCommand(app))
	cmd.AddCommand(newOptionsCommand(app))

	return cmd
}

// Period resolves the flags against the loaded data.
func (f *Flags) Period(result *pipeline.Result) (report.Period, error) {
	month, ok := report.ParseMonth(f.Month)
	if !ok {
		return report.Period{}, fmt.Errorf("invalid month %q", f.Month)
	}
	year := f.Year
	if year == 0 {
		year = report.DefaultYear(report.Years(result.Activity), now())
	}
	return report.Period{Year: year, Month: month, Area: f.Area}, nil
}

// BuildOverview computes the overview of period.
func BuildOverview(result *pipeline.Result, period report.Period, tags []string) Overview {
	selected := report.Select(result.Activity, period)
	tasks := report.FilterTags(report.TaskTable(selected), tags, report.TaskRow.Values)
	return Overview{
		Summary: report.Overview(result.Master, result.Activity, period),
		Areas:   report.AreaCounts(result.Master, nil),
		Tasks:   tasks,
	}
}

// PrintOverview writes the overview. Table formats print the summary and
// the task list as two tables.
func PrintOverview(w io.Writer, format output.Format, view Overview) error {
	if !isTable(format) {
		return output.NewFormatter(format).Format(w, view)
	}

	formatter := output.NewFormatter(format)
	if err := formatter.Format(w, cmdtable.SummaryToTableData(view.Summary, view.Areas)); err != nil {
		return err
	}
	if len(view.Tasks) == 0 {
		_, err := fmt.Fprintln(w, "\nNo tasks in this period.")
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return formatter.Format(w, cmdtable.TaskRowsToTableData(view.Tasks))
}

func isTable(format output.Format) bool {
	return format == output.FormatTable || format == output.FormatWide || format == ""
}
