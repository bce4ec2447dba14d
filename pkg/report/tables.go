package report

import (
	"slices"
	"strings"
	"time"

	"github.com/agentstation/kolmap/pkg/activity"
	"github.com/agentstation/kolmap/pkg/schema"
)

// TaskRow is one line of the task table.
type TaskRow struct {
	Date     time.Time `json:"date"`
	Name     string    `json:"name"`
	Task     string    `json:"task"`
	Activity string    `json:"activity"`
	Status   string    `json:"status"`
	Alert    string    `json:"alert"`
	Area     string    `json:"area"`
}

// Values returns the displayed cells of the row.
func (r TaskRow) Values() []string {
	return []string{r.Date.Format(time.DateOnly), r.Name, r.Task, r.Activity, r.Status, r.Alert, r.Area}
}

// TaskHeaders names the columns of TaskRow.Values.
var TaskHeaders = []string{"Date", "Name", "Task", "Activity", "Status", "Warning/Delayed", "Area"}

// TaskTable lists records with warnings first, then delays, then the rest,
// each group oldest first.
func TaskTable(records activity.Records) []TaskRow {
	sorted := activity.SortByAlertThenDate(records)
	out := make([]TaskRow, len(sorted))
	for i, r := range sorted {
		out[i] = TaskRow{
			Date:     r.Date,
			Name:     r.Name,
			Task:     r.Task,
			Activity: r.Activity,
			Status:   r.StatusNorm,
			Alert:    r.Alert(),
			Area:     r.Area,
		}
	}
	return out
}

// LogRow is one line of an entity's activity log.
type LogRow struct {
	Status   string    `json:"status"`
	Date     time.Time `json:"date"`
	Task     string    `json:"task"`
	Activity string    `json:"activity"`
	Alert    string    `json:"alert"`
}

// Values returns the displayed cells of the row.
func (r LogRow) Values() []string {
	return []string{r.Status, r.Date.Format(time.DateOnly), r.Task, r.Activity, r.Alert}
}

// LogHeaders names the columns of LogRow.Values.
var LogHeaders = []string{"Status", "Date", "Task", "Activity", "Warning/Delayed"}

// EntityLog returns the activity of one entity, newest first.
func EntityLog(records activity.Records, name string) []LogRow {
	var mine activity.Records
	for _, r := range records {
		if r.Name == name {
			mine = append(mine, r)
		}
	}
	mine = activity.SortNewestFirst(mine)
	out := make([]LogRow, len(mine))
	for i, r := range mine {
		out[i] = LogRow{Status: r.StatusNorm, Date: r.Date, Task: r.Task, Activity: r.Activity, Alert: r.Alert()}
	}
	return out
}

// FilterTags keeps the items for which any tag occurs in any displayed
// value. No tags keeps everything.
func FilterTags[T any](items []T, tags []string, values func(T) []string) []T {
	if len(tags) == 0 {
		return items
	}
	var out []T
	for _, it := range items {
		if matchesAny(values(it), tags) {
			out = append(out, it)
		}
	}
	return out
}

func matchesAny(values, tags []string) bool {
	for _, v := range values {
		for _, t := range tags {
			if t != "" && strings.Contains(v, t) {
				return true
			}
		}
	}
	return false
}

// EntityValues returns the displayed cells of an entity in the overview list.
func EntityValues(e schema.Entity) []string {
	return []string{e.Name, e.Area, e.Country, e.DeliveredScanner, e.SerialNo}
}

// RecordValues returns the displayed cells of an activity record.
func RecordValues(r activity.Record) []string {
	return []string{r.Name, r.Task, r.Activity, r.StatusNorm, r.Alert(), r.Area, r.Country}
}

// TaskTags lists the tag choices for a set of records: names, tasks and
// normalized statuses, sorted and distinct.
func TaskTags(records activity.Records) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		for _, v := range []string{r.Name, r.Task, r.StatusNorm} {
			if v != "" {
				seen[v] = struct{}{}
			}
		}
	}
	return sortedKeys(seen)
}

// EntityTags lists the tag choices for the entity list.
func EntityTags(entities []schema.Entity) []string {
	seen := make(map[string]struct{})
	for _, e := range entities {
		for _, v := range []string{e.Name, e.Area, e.Country} {
			if v != "" {
				seen[v] = struct{}{}
			}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
