package columns

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggest ranks headers that loosely resemble any candidate. It is a
// diagnostic aid for unresolved fields and never takes part in Resolve.
func Suggest(headers, candidates []string, limit int) []string {
	best := make(map[int]int)
	for _, c := range candidates {
		ranks := fuzzy.RankFindNormalizedFold(Normalize(c), normalizedAll(headers))
		for _, r := range ranks {
			if d, ok := best[r.OriginalIndex]; !ok || r.Distance < d {
				best[r.OriginalIndex] = r.Distance
			}
		}
	}

	idx := make([]int, 0, len(best))
	for i := range best {
		idx = append(idx, i)
	}
	sort.Slice(idx, func(a, b int) bool {
		if best[idx[a]] != best[idx[b]] {
			return best[idx[a]] < best[idx[b]]
		}
		return idx[a] < idx[b]
	})

	if limit > 0 && len(idx) > limit {
		idx = idx[:limit]
	}
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = headers[j]
	}
	return out
}

func normalizedAll(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = Normalize(h)
	}
	return out
}
