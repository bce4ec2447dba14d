package pipeline

import (
	"time"

	"github.com/agentstation/kolmap/pkg/activity"
	"github.com/agentstation/kolmap/pkg/links"
	"github.com/agentstation/kolmap/pkg/schema"
	"github.com/agentstation/kolmap/pkg/table"
)

// Result holds the three normalized tables and what was learned while
// producing them. Running the same input twice yields identical tables,
// resolutions and statistics; only the timing in Metadata differs.
type Result struct {
	// Core data
	Master    []schema.Entity
	Contracts []schema.Contract
	Activity  activity.Records

	// Header resolution per table
	Resolutions map[table.Kind]schema.Resolution

	// Link mappings that were applied
	PDFLinks   links.Result
	PhotoLinks links.Result

	// Metadata (timing is wall-clock and differs between runs)
	Metadata ResultMetadata
}

// ResultMetadata contains timing and statistics of a run.
type ResultMetadata struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Stats     ResultStatistics
}

// ResultStatistics counts rows in and out of a run.
type ResultStatistics struct {
	MasterRows      int            `json:"master_rows"`
	Entities        int            `json:"entities"`
	UnnamedEntities int            `json:"unnamed_entities"`
	DuplicateNames  []string       `json:"duplicate_names,omitempty"`
	ContractRows    int            `json:"contract_rows"`
	LatestContracts int            `json:"latest_contracts"`
	Activity        activity.Stats `json:"activity"`
}

// Entity returns the master record of name.
func (r *Result) Entity(name string) (schema.Entity, bool) {
	for _, e := range r.Master {
		if e.Name == name {
			return e, true
		}
	}
	return schema.Entity{}, false
}

// EntityIndex returns the master records keyed by name.
func (r *Result) EntityIndex() map[string]schema.Entity {
	m := make(map[string]schema.Entity, len(r.Master))
	for _, e := range r.Master {
		m[e.Name] = e
	}
	return m
}
