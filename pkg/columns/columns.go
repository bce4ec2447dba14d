// Package columns resolves arbitrary source headers to canonical fields.
//
// Matching is normalized substring containment: a header matches a candidate
// when the normalized header contains the normalized candidate. Headers are
// scanned in table order and, for each header, candidates in priority order,
// so an earlier header wins over a later one even when the later header
// matches a higher-priority candidate.
package columns

import (
	"strings"
)

var separators = strings.NewReplacer(
	" ", "_",
	"(", "",
	")", "",
	"/", "_",
)

// Normalize lower-cases and trims s, turns spaces and slashes into "_" and
// drops parentheses.
func Normalize(s string) string {
	return separators.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// Resolve returns the first header (in header order) whose normalized form
// contains any normalized candidate. It reports false when nothing matches.
func Resolve(headers, candidates []string) (string, bool) {
	normalized := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if n := Normalize(c); n != "" {
			normalized = append(normalized, n)
		}
	}

	for _, h := range headers {
		nh := Normalize(h)
		for _, nc := range normalized {
			if strings.Contains(nh, nc) {
				return h, true
			}
		}
	}
	return "", false
}
