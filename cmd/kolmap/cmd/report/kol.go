package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/kolmap/internal/cmd/output"
	cmdtable "github.com/agentstation/kolmap/internal/cmd/table"
	"github.com/agentstation/kolmap/pkg/contracts"
	"github.com/agentstation/kolmap/pkg/errors"
	"github.com/agentstation/kolmap/pkg/pipeline"
	"github.com/agentstation/kolmap/pkg/report"
	"github.com/agentstation/kolmap/pkg/schema"
)

// KOLDetail is everything known about one KOL.
type KOLDetail struct {
	Entity    schema.Entity     `json:"entity" yaml:"entity"`
	Contracts []schema.Contract `json:"contracts" yaml:"contracts"`
	Log       []report.LogRow   `json:"log" yaml:"log"`
}

func newKOLCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "kol <name>",
		Short: "Profile, contract history and activity log of one KOL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Load(cmd.Context())
			if err != nil {
				return err
			}
			detail, err := BuildKOLDetail(result, args[0])
			if err != nil {
				return err
			}
			return PrintKOLDetail(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), detail)
		},
	}
}

// BuildKOLDetail collects the records of name.
func BuildKOLDetail(result *pipeline.Result, name string) (KOLDetail, error) {
	name = strings.TrimSpace(name)
	entity, ok := result.Entity(name)
	if !ok {
		return KOLDetail{}, errors.NewNotFoundError("kol", name)
	}
	return KOLDetail{
		Entity:    entity,
		Contracts: contracts.History(result.Contracts, name),
		Log:       report.EntityLog(result.Activity, name),
	}, nil
}

// PrintKOLDetail writes the detail view.
func PrintKOLDetail(w io.Writer, format output.Format, d KOLDetail) error {
	if !isTable(format) {
		return output.NewFormatter(format).Format(w, d)
	}

	formatter := output.NewFormatter(format)
	sections := []struct {
		title string
		data  cmdtable.Data
		empty bool
	}{
		{"Profile", cmdtable.EntitiesToTableData([]schema.Entity{d.Entity}, true), false},
		{"Contracts", cmdtable.ContractsToTableData(d.Contracts), len(d.Contracts) == 0},
		{"Activity", cmdtable.LogRowsToTableData(d.Log), len(d.Log) == 0},
	}
	for i, s := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n", s.title); err != nil {
			return err
		}
		if s.empty {
			if _, err := fmt.Fprintln(w, "  (none)"); err != nil {
				return err
			}
			continue
		}
		if err := formatter.Format(w, s.data); err != nil {
			return err
		}
	}
	return nil
}
