// Package status classifies free-text status and delay columns of the
// activity log into a fixed vocabulary.
package status

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Canonical status values.
const (
	Planned    = "Planned"
	OnProgress = "On Progress"
	Done       = "Done"
	TBD        = "TBD"
)

// Alert labels for the combined warning/delayed column.
const (
	AlertDelayed = "Delayed"
	AlertWarning = "Warning"
	AlertNone    = "-"
)

var (
	plannedExact     = []string{"planned", "plan"}
	progressMarkers  = []string{"on progress", "in progress", "ongoing", "doing"}
	doneMarkers      = []string{"done", "finished", "complete", "completed", "end"}
	tbdMarkers       = []string{"tbd", "to be determined"}
	delayedValues    = []string{"1", "y", "yes", "true", "delayed", "delay", "o"}
	statusSeparators = strings.NewReplacer("_", " ", "-", " ")
)

// Canonical returns the statuses in board order.
func Canonical() []string {
	return []string{TBD, Planned, OnProgress, Done}
}

// Normalize maps a raw status to Planned, On Progress, Done, TBD, or the
// title-cased input when nothing matches. Empty input is Planned.
// Normalize(Normalize(x)) == Normalize(x) for every x.
func Normalize(raw string) string {
	s := statusSeparators.Replace(strings.ToLower(strings.TrimSpace(raw)))
	s = strings.TrimSpace(s)

	switch {
	case s == "":
		return Planned
	case slices.Contains(plannedExact, s):
		return Planned
	case containsAny(s, progressMarkers):
		return OnProgress
	case containsAny(s, doneMarkers):
		return Done
	case containsAny(s, tbdMarkers):
		return TBD
	}

	title := titleWords(s)
	// Title casing can change the lower-case form for a few scripts; fall
	// back to the lower-case text so a second pass is a no-op.
	if strings.ToLower(title) != s {
		return s
	}
	return title
}

// titleWords upper-cases the first letter of every run of letters and
// lower-cases the rest, so "phase2b o'neil" becomes "Phase2B O'Neil".
func titleWords(s string) string {
	caser := cases.Title(language.Und) // a Caser is not safe for concurrent use
	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		i := strings.IndexFunc(s, unicode.IsLetter)
		if i < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:i])
		s = s[i:]
		j := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
		if j < 0 {
			j = len(s)
		}
		b.WriteString(caser.String(s[:j]))
		caser.Reset()
		s = s[j:]
	}
	return b.String()
}

// Delayed reports whether a raw delay marker means "delayed".
func Delayed(raw string) bool {
	return slices.Contains(delayedValues, strings.ToLower(strings.TrimSpace(raw)))
}

// Warning reports whether a raw delay marker carries a warning.
func Warning(raw string) bool {
	return strings.Contains(strings.ToLower(strings.TrimSpace(raw)), "warning")
}

// WarningOrDelayed renders the combined alert column; Delayed wins over
// Warning.
func WarningOrDelayed(delayed, warning bool) string {
	switch {
	case delayed:
		return AlertDelayed
	case warning:
		return AlertWarning
	}
	return AlertNone
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
