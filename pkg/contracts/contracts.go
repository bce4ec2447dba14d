// Package contracts selects the representative contract of each entity and
// merges it onto the master table.
package contracts

import (
	"sort"

	"github.com/agentstation/kolmap/pkg/schema"
)

// LatestPerEntity returns, per name, the contract with the greatest end date.
//
// Absent end dates rank below every parsed date. When no contract of a name
// has a parsed end the name maps to an empty contract carrying only the
// name. Among contracts sharing the greatest end, the last one in input
// order wins. Rows without a name are ignored.
func LatestPerEntity(contracts []schema.Contract) map[string]schema.Contract {
	latest := make(map[string]schema.Contract)
	for _, c := range contracts {
		if c.Name == "" {
			continue
		}
		if c.End.IsZero() {
			if _, ok := latest[c.Name]; !ok {
				latest[c.Name] = schema.Contract{Name: c.Name}
			}
			continue
		}
		cur, ok := latest[c.Name]
		if !ok || cur.End.IsZero() || !c.End.Before(cur.End) {
			latest[c.Name] = c
		}
	}
	return latest
}

// Attach copies the contract start, end and type of each entity's latest
// contract onto a copy of entities. Entities without a contract are returned
// unchanged.
func Attach(entities []schema.Entity, latest map[string]schema.Contract) []schema.Entity {
	out := make([]schema.Entity, len(entities))
	for i, e := range entities {
		if c, ok := latest[e.Name]; ok {
			e.ContractStart = c.Start
			e.ContractEnd = c.End
			e.Times = c.Times
		}
		out[i] = e
	}
	return out
}

// History returns the contracts of one entity ordered by end date, oldest
// first. Contracts without an end date come first; ties keep input order.
func History(contracts []schema.Contract, name string) []schema.Contract {
	var out []schema.Contract
	for _, c := range contracts {
		if c.Name == name {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].End.Before(out[j].End)
	})
	return out
}

// Names returns the names in latest in sorted order.
func Names(latest map[string]schema.Contract) []string {
	names := make([]string, 0, len(latest))
	for n := range latest {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
