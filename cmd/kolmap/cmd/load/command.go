// Package load provides the command that prints the normalized tables.
package load

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/kolmap/internal/cmd/output"
	cmdtable "github.com/agentstation/kolmap/internal/cmd/table"
	"github.com/agentstation/kolmap/pkg/activity"
	"github.com/agentstation/kolmap/pkg/contracts"
	"github.com/agentstation/kolmap/pkg/pipeline"
	"github.com/agentstation/kolmap/pkg/report"
	"github.com/agentstation/kolmap/pkg/schema"
	"github.com/agentstation/kolmap/pkg/table"
)

// AppContext defines what the load command needs from the app.
type AppContext interface {
	Load(ctx context.Context) (*pipeline.Result, error)
	OutputFormat() string
	Logger() *zerolog.Logger
}

// Sort orders of the activity table.
const (
	SortNone   = ""
	SortNewest = "newest"
	SortAlert  = "alert"
)

// Flags holds the load command flags.
type Flags struct {
	Tags  []string
	Sort  string
	Name  string
	Limit int
}

// NewCommand creates the load command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "load <master|contract|activity>",
		GroupID: "core",
		Short:   "Print one normalized table",
		Long: `Load fetches the three source tables, normalizes them and prints one.

  master    one row per KOL with the latest contract and resolved links
  contract  every contract row with parsed dates
  activity  deduplicated, dated activity with derived status and flags`,
		Example: `  kolmap load master
  kolmap load activity --sort alert --tag Europe
  kolmap load contract --name "Dr. Alice Moreau"
  kolmap load master -o wide --workbook kol.xlsx`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(table.KindMaster), string(table.KindContract), string(table.KindActivity)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := table.Kind(strings.ToLower(args[0]))
			if !slices.Contains(table.Kinds(), kind) {
				return fmt.Errorf("unknown table %q: must be one of master, contract, activity", args[0])
			}
			if !slices.Contains([]string{SortNone, SortNewest, SortAlert}, flags.Sort) {
				return fmt.Errorf("invalid sort %q: must be newest or alert", flags.Sort)
			}

			result, err := app.Load(cmd.Context())
			if err != nil {
				return err
			}
			return Print(cmd, output.DetectFormat(app.OutputFormat()), result, kind, flags)
		},
	}

	cmd.Flags().StringSliceVarP(&flags.Tags, "tag", "t", nil,
		"Keep rows whose displayed values contain any tag (repeatable)")
	cmd.Flags().StringVar(&flags.Sort, "sort", SortNone,
		"Activity order: newest, or alert (warnings and delays first)")
	cmd.Flags().StringVar(&flags.Name, "name", "",
		"Only rows of this KOL (contract history ordered by end date)")
	cmd.Flags().IntVar(&flags.Limit, "limit", 0,
		"Maximum number of rows")

	return cmd
}

// Print writes one table of result.
func Print(cmd *cobra.Command, format output.Format, result *pipeline.Result, kind table.Kind, flags *Flags) error {
	w := cmd.OutOrStdout()

	switch kind {
	case table.KindMaster:
		entities := result.Master
		if flags.Name != "" {
			entities = filterName(entities, flags.Name, func(e schema.Entity) string { return e.Name })
		}
		entities = limit(report.FilterTags(entities, flags.Tags, report.EntityValues), flags.Limit)
		return output.Write(w, format, entities, func(wide bool) cmdtable.Data {
			return cmdtable.EntitiesToTableData(entities, wide)
		})

	case table.KindContract:
		rows := result.Contracts
		if flags.Name != "" {
			rows = contracts.History(rows, strings.TrimSpace(flags.Name))
		}
		rows = limit(report.FilterTags(rows, flags.Tags, contractValues), flags.Limit)
		return output.Write(w, format, rows, func(bool) cmdtable.Data {
			return cmdtable.ContractsToTableData(rows)
		})

	default:
		records := result.Activity
		switch flags.Sort {
		case SortNewest:
			records = activity.SortNewestFirst(records)
		case SortAlert:
			records = activity.SortByAlertThenDate(records)
		}
		if flags.Name != "" {
			records = filterName(records, flags.Name, func(r activity.Record) string { return r.Name })
		}
		records = limit(report.FilterTags(records, flags.Tags, report.RecordValues), flags.Limit)
		return output.Write(w, format, records, func(wide bool) cmdtable.Data {
			return cmdtable.ActivityToTableData(records, wide)
		})
	}
}

func contractValues(c schema.Contract) []string {
	return []string{c.Name, c.Times}
}

func filterName[S ~[]T, T any](items S, name string, nameOf func(T) string) S {
	name = strings.TrimSpace(name)
	var out S
	for _, it := range items {
		if nameOf(it) == name {
			out = append(out, it)
		}
	}
	return out
}

func limit[S ~[]T, T any](items S, n int) S {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
