// Package table converts kolmap results into rows for table output.
package table

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/kolmap/pkg/activity"
	"github.com/agentstation/kolmap/pkg/constants"
	"github.com/agentstation/kolmap/pkg/report"
	"github.com/agentstation/kolmap/pkg/schema"
	"github.com/agentstation/kolmap/pkg/table"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// maxCellWidth truncates long free text in narrow tables.
const maxCellWidth = 48

// EntitiesToTableData converts master records to table format.
func EntitiesToTableData(entities []schema.Entity, wide bool) Data {
	headers := []string{"ID", "Name", "Area", "Country", "Hospital", "Contract End", "Times"}
	if wide {
		headers = append(headers, "Scanner", "Serial No", "Location", "Notion", "PDF", "Photo")
	}

	rows := make([][]string, 0, len(entities))
	for _, e := range entities {
		row := []string{
			strconv.FormatInt(e.KOLID, 10),
			e.Name,
			OrDash(e.Area),
			OrDash(e.Country),
			Truncate(OrDash(e.Hospital), wide),
			FormatDate(e.ContractEnd),
			OrDash(e.Times),
		}
		if wide {
			row = append(row,
				OrDash(e.DeliveredScanner),
				OrDash(e.SerialNo),
				FormatLocation(e),
				OrDash(e.NotionLink),
				OrDash(e.PDFLink),
				OrDash(e.Photo),
			)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows}
}

// ContractsToTableData converts contract rows to table format.
func ContractsToTableData(contracts []schema.Contract) Data {
	rows := make([][]string, 0, len(contracts))
	for _, c := range contracts {
		rows = append(rows, []string{c.Name, FormatDate(c.Start), FormatDate(c.End), OrDash(c.Times)})
	}
	return Data{
		Headers: []string{"Name", "Contract Start", "Contract End", "Times"},
		Rows:    rows,
	}
}

// ActivityToTableData converts enriched activity to table format.
func ActivityToTableData(records activity.Records, wide bool) Data {
	headers := []string{"Date", "Name", "Task", "Status", "Warning/Delayed", "Area"}
	if wide {
		headers = append(headers, "Activity", "Raw Status", "Country", "Source")
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := []string{
			FormatDate(r.Date),
			r.Name,
			Truncate(OrDash(r.Task), wide),
			r.StatusNorm,
			r.Alert(),
			OrDash(r.Area),
		}
		if wide {
			row = append(row, OrDash(r.Activity), OrDash(r.Status), OrDash(r.Country), OrDash(r.Source))
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows}
}

// SummaryToTableData converts report headline counts to a key-value table.
func SummaryToTableData(s report.Summary, areas report.AreaSummary) Data {
	period := strconv.Itoa(s.Period.Year)
	if s.Period.Month != 0 {
		period = report.MonthName(s.Period.Month) + " " + period
	}
	area := s.Period.Area
	if area == "" {
		area = "All"
	}

	rows := [][]string{
		{"Period", period},
		{"Area", area},
		{"Active KOLs", strconv.Itoa(s.ActiveEntities)},
		{"Total Tasks", strconv.Itoa(s.TotalTasks)},
		{"On Progress", strconv.Itoa(s.OnProgress)},
		{"Done", strconv.Itoa(s.Done)},
		{"Delayed", strconv.Itoa(s.Delayed)},
		{"Warning", strconv.Itoa(s.Warning)},
		{"KOLs (all areas)", strconv.Itoa(areas.Total)},
	}
	for _, b := range areas.Buckets {
		rows = append(rows, []string{"KOLs " + b.Label, strconv.Itoa(b.Count)})
	}

	return Data{
		Headers:         []string{"Metric", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// TaskRowsToTableData converts report task rows to table format.
func TaskRowsToTableData(rows []report.TaskRow) Data {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, dashed(r.Values()))
	}
	return Data{Headers: report.TaskHeaders, Rows: out}
}

// LogRowsToTableData converts an entity log to table format.
func LogRowsToTableData(rows []report.LogRow) Data {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, dashed(r.Values()))
	}
	return Data{Headers: report.LogHeaders, Rows: out}
}

// ResolutionsToTableData shows which source header fed each canonical field.
func ResolutionsToTableData(resolutions map[table.Kind]schema.Resolution) Data {
	var rows [][]string
	for _, kind := range table.Kinds() {
		res, ok := resolutions[kind]
		if !ok {
			continue
		}
		for _, field := range table.Fields(kind) {
			source, found := res.Source(field)
			hint := "-"
			if !found {
				source = "(missing)"
				if s := res.Suggestions[field]; len(s) > 0 {
					hint = strings.Join(s, ", ")
				}
			}
			rows = append(rows, []string{string(kind), string(field), source, hint})
		}
	}
	return Data{
		Headers: []string{"Table", "Field", "Source Header", "Suggestions"},
		Rows:    rows,
	}
}

// FormatDate formats a date, or "-" when unset.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return constants.Placeholder
	}
	return t.Format(constants.DateFormat)
}

// FormatLocation formats the coordinates of an entity.
func FormatLocation(e schema.Entity) string {
	if !e.HasLocation() {
		return constants.Placeholder
	}
	return fmt.Sprintf("%.4f, %.4f", *e.Latitude, *e.Longitude)
}

// OrDash returns s, or "-" when s is blank.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return constants.Placeholder
	}
	return s
}

// Truncate shortens s for narrow tables.
func Truncate(s string, wide bool) string {
	if wide || len([]rune(s)) <= maxCellWidth {
		return s
	}
	r := []rune(s)
	return string(r[:maxCellWidth-3]) + "..."
}

func dashed(values []string) []string {
	for i, v := range values {
		values[i] = OrDash(v)
	}
	return values
}
