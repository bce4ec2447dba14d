// Package report computes the performance figures shown for a period of the
// activity log.
package report

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/agentstation/kolmap/pkg/activity"
	"github.com/agentstation/kolmap/pkg/schema"
	"github.com/agentstation/kolmap/pkg/status"
)

// Period selects activity by year, optional month and optional area.
type Period struct {
	Year  int    `json:"year"`
	Month int    `json:"month,omitempty"` // 1-12, 0 for the whole year
	Area  string `json:"area,omitempty"`  // empty for all areas
}

// Contains reports whether r falls in the period.
func (p Period) Contains(r activity.Record) bool {
	if r.Date.Year() != p.Year {
		return false
	}
	if p.Month != 0 && int(r.Date.Month()) != p.Month {
		return false
	}
	return p.Area == "" || r.Area == p.Area
}

// Summary holds the headline counts of a period.
type Summary struct {
	Period         Period `json:"period"`
	ActiveEntities int    `json:"active_entities"`
	TotalTasks     int    `json:"total_tasks"`
	OnProgress     int    `json:"on_progress"`
	Done           int    `json:"done"`
	Delayed        int    `json:"delayed"`
	Warning        int    `json:"warning"`
}

// Select returns the records inside p, in input order.
func Select(records activity.Records, p Period) activity.Records {
	var out activity.Records
	for _, r := range records {
		if p.Contains(r) {
			out = append(out, r)
		}
	}
	return out
}

// Overview counts the tasks of a period. Active entities are the distinct
// names of the master table, restricted to the period's area when set.
func Overview(entities []schema.Entity, records activity.Records, p Period) Summary {
	s := Summary{Period: p}

	names := make(map[string]struct{})
	for _, e := range entities {
		if e.Name == "" || (p.Area != "" && e.Area != p.Area) {
			continue
		}
		names[e.Name] = struct{}{}
	}
	s.ActiveEntities = len(names)

	for _, r := range Select(records, p) {
		s.TotalTasks++
		switch r.StatusNorm {
		case status.OnProgress:
			s.OnProgress++
		case status.Done:
			s.Done++
		}
		if r.DelayedFlag {
			s.Delayed++
		}
		if r.WarningFlag {
			s.Warning++
		}
	}
	return s
}

// Years returns the distinct years present in records, ascending.
func Years(records activity.Records) []int {
	seen := make(map[int]struct{})
	for _, r := range records {
		seen[r.Date.Year()] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// DefaultYear picks now's year when present, else the latest year, else
// now's year.
func DefaultYear(years []int, now time.Time) int {
	if slices.Contains(years, now.Year()) || len(years) == 0 {
		return now.Year()
	}
	return slices.Max(years)
}

// Areas returns the distinct non-empty areas of the master table, sorted.
func Areas(entities []schema.Entity) []string {
	seen := make(map[string]struct{})
	for _, e := range entities {
		if e.Area != "" {
			seen[e.Area] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for a := range seen {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthName returns the short name of month m (1-12), or "All" for 0.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return "All"
	}
	return monthNames[m-1]
}

// ParseMonth reads a month given as 1-12, a short or long English name, or
// "all". It returns 0 for the whole year.
func ParseMonth(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "all" {
		return 0, true
	}
	for i, name := range monthNames {
		if s == strings.ToLower(name) || s == strings.ToLower(time.Month(i+1).String()) {
			return i + 1, true
		}
	}
	if t, err := time.Parse("1", s); err == nil {
		return int(t.Month()), true
	}
	return 0, false
}
