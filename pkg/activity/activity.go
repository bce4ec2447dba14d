// Package activity cleans the activity log and joins entity metadata onto it.
package activity

import (
	"strings"
	"time"

	"github.com/agentstation/kolmap/pkg/schema"
	"github.com/agentstation/kolmap/pkg/status"
)

// Record is an enriched activity row. Date is always set.
type Record struct {
	Name        string    `json:"name" yaml:"name"`
	Date        time.Time `json:"date" yaml:"date"`
	Task        string    `json:"task,omitempty" yaml:"task,omitempty"`
	Activity    string    `json:"activity,omitempty" yaml:"activity,omitempty"`
	Status      string    `json:"status,omitempty" yaml:"status,omitempty"`
	Delayed     string    `json:"delayed,omitempty" yaml:"delayed,omitempty"`
	Source      string    `json:"source,omitempty" yaml:"source,omitempty"`
	StatusNorm  string    `json:"status_norm" yaml:"status_norm"`
	DelayedFlag bool      `json:"delayed_flag" yaml:"delayed_flag"`
	WarningFlag bool      `json:"warning_flag" yaml:"warning_flag"`
	Area        string    `json:"area,omitempty" yaml:"area,omitempty"`
	Country     string    `json:"country,omitempty" yaml:"country,omitempty"`
}

// Alert returns the combined warning/delayed label of the record.
func (r Record) Alert() string {
	return status.WarningOrDelayed(r.DelayedFlag, r.WarningFlag)
}

// Stats counts what Enrich discarded or could not join.
type Stats struct {
	Input        int `json:"input"`
	Duplicates   int `json:"duplicates"`
	DroppedDates int `json:"dropped_dates"`
	Unmatched    int `json:"unmatched"`
}

// Enrich deduplicates rows, drops rows without a usable date, derives the
// status and flag fields and joins Area and Country from entities by name.
// Rows whose name is not in entities keep an empty Area and Country. The
// input slice is not modified and output order follows input order.
func Enrich(rows []schema.Activity, entities map[string]schema.Entity) (Records, Stats) {
	stats := Stats{Input: len(rows)}
	seen := make(map[string]struct{}, len(rows))
	out := make(Records, 0, len(rows))

	for _, row := range rows {
		key := dedupKey(row)
		if _, dup := seen[key]; dup {
			stats.Duplicates++
			continue
		}
		seen[key] = struct{}{}

		if row.Date.IsZero() {
			stats.DroppedDates++
			continue
		}

		rec := Record{
			Name:        row.Name,
			Date:        row.Date,
			Task:        row.Task,
			Activity:    row.Activity,
			Status:      row.Status,
			Delayed:     row.Delayed,
			Source:      row.Source,
			StatusNorm:  status.Normalize(row.Status),
			DelayedFlag: status.Delayed(row.Delayed),
			WarningFlag: status.Warning(row.Delayed),
		}
		if e, ok := entities[row.Name]; ok {
			rec.Area = e.Area
			rec.Country = e.Country
		} else {
			stats.Unmatched++
		}
		out = append(out, rec)
	}
	return out, stats
}

func dedupKey(a schema.Activity) string {
	date := ""
	if !a.Date.IsZero() {
		date = a.Date.Format(time.RFC3339Nano)
	}
	return strings.Join([]string{a.Name, date, a.Task, a.Activity, a.Status, a.Delayed, a.Source}, "\x1f")
}
