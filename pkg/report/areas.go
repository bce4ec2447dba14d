package report

import (
	"strings"

	"github.com/agentstation/kolmap/pkg/schema"
)

// Bucket groups areas by keyword.
type Bucket struct {
	Label    string
	Keywords []string
}

// DefaultBuckets are the regional groupings of the world overview.
var DefaultBuckets = []Bucket{
	{Label: "USA / NA", Keywords: []string{"usa", "united states", "north america", "america"}},
	{Label: "Europe", Keywords: []string{"europe", "eu"}},
	{Label: "LATAM", Keywords: []string{"latam", "latin", "south america", "brazil"}},
}

// BucketCount is the number of distinct entities in one bucket.
type BucketCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// AreaSummary counts distinct entities overall and per bucket.
type AreaSummary struct {
	Total   int           `json:"total"`
	Buckets []BucketCount `json:"buckets"`
}

// AreaCounts counts distinct entity names per bucket. An entity counts in
// every bucket one of whose keywords occurs in its lower-cased area.
func AreaCounts(entities []schema.Entity, buckets []Bucket) AreaSummary {
	if buckets == nil {
		buckets = DefaultBuckets
	}

	total := make(map[string]struct{})
	per := make([]map[string]struct{}, len(buckets))
	for i := range per {
		per[i] = make(map[string]struct{})
	}

	for _, e := range entities {
		if e.Name == "" {
			continue
		}
		total[e.Name] = struct{}{}
		area := strings.ToLower(e.Area)
		for i, b := range buckets {
			for _, k := range b.Keywords {
				if strings.Contains(area, k) {
					per[i][e.Name] = struct{}{}
					break
				}
			}
		}
	}

	out := AreaSummary{Total: len(total), Buckets: make([]BucketCount, len(buckets))}
	for i, b := range buckets {
		out.Buckets[i] = BucketCount{Label: b.Label, Count: len(per[i])}
	}
	return out
}
