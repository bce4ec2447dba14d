package activity

import (
	"sort"

	"github.com/agentstation/kolmap/pkg/status"
	"github.com/agentstation/kolmap/pkg/table"
)

// Records is a list of enriched activity rows.
type Records []Record

// Raw converts the records back into a raw activity table holding the
// source columns only.
func (rs Records) Raw() *table.Raw {
	fields := table.Fields(table.KindActivity)
	headers := make([]string, len(fields))
	for i, f := range fields {
		headers[i] = string(f)
	}

	rows := make([]table.Row, 0, len(rs))
	for _, r := range rs {
		rows = append(rows, table.Row{
			string(table.FieldName):     orNil(r.Name),
			string(table.FieldDate):     r.Date,
			string(table.FieldTask):     orNil(r.Task),
			string(table.FieldActivity): orNil(r.Activity),
			string(table.FieldStatus):   orNil(r.Status),
			string(table.FieldDelayed):  orNil(r.Delayed),
			string(table.FieldSource):   orNil(r.Source),
		})
	}
	return table.NewRaw(headers, rows...)
}

// Columns lists the output columns of an enriched activity table.
func Columns() []table.Field {
	return append(table.Fields(table.KindActivity),
		table.FieldStatusNorm, table.FieldDelayedFlag, table.FieldWarningFlag,
		table.FieldArea, table.FieldCountry)
}

// Table returns the records as a normalized table including derived columns.
func (rs Records) Table() *table.Normalized {
	out := &table.Normalized{
		Kind:    table.KindActivity,
		Columns: Columns(),
		Records: make([]table.Record, 0, len(rs)),
	}
	for _, r := range rs {
		out.Records = append(out.Records, table.Record{
			table.FieldName:        table.Text(r.Name),
			table.FieldDate:        table.Date(r.Date),
			table.FieldTask:        table.Text(r.Task),
			table.FieldActivity:    table.Text(r.Activity),
			table.FieldStatus:      table.Text(r.Status),
			table.FieldDelayed:     table.Text(r.Delayed),
			table.FieldSource:      table.Text(r.Source),
			table.FieldStatusNorm:  table.Text(r.StatusNorm),
			table.FieldDelayedFlag: table.Bool(r.DelayedFlag),
			table.FieldWarningFlag: table.Bool(r.WarningFlag),
			table.FieldArea:        table.Text(r.Area),
			table.FieldCountry:     table.Text(r.Country),
		})
	}
	return out
}

// SortNewestFirst returns a copy ordered by date, newest first. Equal dates
// keep their relative order.
func SortNewestFirst(rs Records) Records {
	out := append(Records(nil), rs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// SortByAlertThenDate returns a copy ordered with warnings first, then
// delays, then the rest; each group oldest first.
func SortByAlertThenDate(rs Records) Records {
	out := append(Records(nil), rs...)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := alertRank(out[i].Alert()), alertRank(out[j].Alert())
		if ri != rj {
			return ri > rj
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func alertRank(alert string) int {
	switch alert {
	case status.AlertWarning:
		return 2
	case status.AlertDelayed:
		return 1
	}
	return 0
}

func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
