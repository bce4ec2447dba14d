// Package columns provides the command that shows how source headers were
// mapped onto the canonical columns.
package columns

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/kolmap/internal/cmd/output"
	cmdtable "github.com/agentstation/kolmap/internal/cmd/table"
	"github.com/agentstation/kolmap/pkg/pipeline"
	"github.com/agentstation/kolmap/pkg/schema"
	"github.com/agentstation/kolmap/pkg/table"
)

// AppContext defines what the columns command needs from the app.
type AppContext interface {
	Load(ctx context.Context) (*pipeline.Result, error)
	OutputFormat() string
	Logger() *zerolog.Logger
}

// Report is the structured form of the command output.
type Report struct {
	Resolutions map[table.Kind]schema.Resolution `json:"resolutions" yaml:"resolutions"`
	Stats       *pipeline.ResultStatistics       `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// NewCommand creates the columns command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var showStats bool

	cmd := &cobra.Command{
		Use:     "columns",
		GroupID: "management",
		Short:   "Show which source header feeds each canonical column",
		Long: `Columns loads the source tables and prints, for every canonical column,
the source header it was read from. Columns without a matching header are
filled with their default value; near-miss headers are listed as
suggestions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := app.Load(cmd.Context())
			if err != nil {
				return err
			}
			rep := Report{Resolutions: result.Resolutions}
			if showStats {
				stats := result.Metadata.Stats
				rep.Stats = &stats
			}
			return Print(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), rep)
		},
	}

	cmd.Flags().BoolVar(&showStats, "stats", false, "Also print row counts of the run")

	return cmd
}

// Print writes the report.
func Print(w io.Writer, format output.Format, rep Report) error {
	err := output.Write(w, format, rep, func(bool) cmdtable.Data {
		return cmdtable.ResolutionsToTableData(rep.Resolutions)
	})
	if err != nil || rep.Stats == nil {
		return err
	}
	if format != output.FormatTable && format != output.FormatWide && format != "" {
		return nil
	}

	s := rep.Stats
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return output.NewFormatter(format).Format(w, cmdtable.Data{
		Headers: []string{"Count", "Value"},
		Rows: [][]string{
			{"Master rows", strconv.Itoa(s.MasterRows)},
			{"KOLs", strconv.Itoa(s.Entities)},
			{"Unnamed master rows", strconv.Itoa(s.UnnamedEntities)},
			{"Duplicate names", cmdtable.OrDash(strings.Join(s.DuplicateNames, ", "))},
			{"Contract rows", strconv.Itoa(s.ContractRows)},
			{"KOLs with a contract", strconv.Itoa(s.LatestContracts)},
			{"Activity rows", strconv.Itoa(s.Activity.Input)},
			{"Duplicate activity rows", strconv.Itoa(s.Activity.Duplicates)},
			{"Activity rows without a date", strconv.Itoa(s.Activity.DroppedDates)},
			{"Activity rows of unknown KOLs", strconv.Itoa(s.Activity.Unmatched)},
		},
	})
}
