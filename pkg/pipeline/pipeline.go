// Package pipeline turns the raw master, contract and activity tables into
// the normalized tables used for reporting.
//
// Run is pure orchestration over in-memory tables. Loader adds acquisition
// from a TableSource and best-effort link listings, then calls Run.
package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/kolmap/pkg/activity"
	"github.com/agentstation/kolmap/pkg/columns"
	"github.com/agentstation/kolmap/pkg/contracts"
	"github.com/agentstation/kolmap/pkg/errors"
	"github.com/agentstation/kolmap/pkg/links"
	"github.com/agentstation/kolmap/pkg/logging"
	"github.com/agentstation/kolmap/pkg/schema"
	"github.com/agentstation/kolmap/pkg/table"
)

// Input holds the raw tables and link mappings of one run. A nil table means
// the table was not obtained and fails the run; an empty table is valid.
type Input struct {
	Master   *table.Raw
	Contract *table.Raw
	Activity *table.Raw

	PDFLinks   links.Result
	PhotoLinks links.Result

	// Registry overrides the header candidates; nil uses the defaults.
	Registry *columns.Registry
}

// Run normalizes and merges the tables of in. It never modifies in and
// holds no state between calls.
func Run(ctx context.Context, in Input) (*Result, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	// Step 1: Validate that every table was obtained
	for _, t := range []struct {
		kind table.Kind
		raw  *table.Raw
	}{{table.KindMaster, in.Master}, {table.KindContract, in.Contract}, {table.KindActivity, in.Activity}} {
		if t.raw == nil {
			return nil, errors.NewLoadError(string(t.kind), errors.ErrNotFound)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.NewLoadError("", err)
	}

	normalizer := schema.NewNormalizer(in.Registry)
	result := &Result{
		Resolutions: make(map[table.Kind]schema.Resolution, 3),
		PDFLinks:    orEmpty(in.PDFLinks, links.KindPDF),
		PhotoLinks:  orEmpty(in.PhotoLinks, links.KindPhoto),
	}
	stats := &result.Metadata.Stats

	// Step 2: Normalize all three tables
	masterTable := normalize(logger, normalizer, result, in.Master, table.KindMaster)
	contractTable := normalize(logger, normalizer, result, in.Contract, table.KindContract)
	activityTable := normalize(logger, normalizer, result, in.Activity, table.KindActivity)

	// Step 3: One record per entity, first occurrence wins
	entities := schema.Entities(masterTable)
	unique, index, duplicates := schema.IndexEntities(entities)
	stats.MasterRows = len(entities)
	stats.Entities = len(unique)
	stats.DuplicateNames = duplicates
	for _, e := range entities {
		if e.Name == "" {
			stats.UnnamedEntities++
		}
	}
	if len(duplicates) > 0 {
		logger.Warn().
			Strs("names", duplicates).
			Msg("Duplicate entity names in master table, keeping first occurrence")
	}
	if stats.UnnamedEntities > 0 {
		logger.Warn().
			Int("rows", stats.UnnamedEntities).
			Msg("Master rows without a name were skipped")
	}

	// Step 4: Merge the latest contract onto each entity
	result.Contracts = schema.Contracts(contractTable)
	latest := contracts.LatestPerEntity(result.Contracts)
	stats.ContractRows = len(result.Contracts)
	stats.LatestContracts = len(latest)
	unique = contracts.Attach(unique, latest)

	// Step 5: Fill links, explicit values first
	result.Master = links.Apply(unique, result.PDFLinks, result.PhotoLinks)

	// Step 6: Clean and enrich the activity log
	records, activityStats := activity.Enrich(schema.Activities(activityTable), index)
	result.Activity = records
	stats.Activity = activityStats
	if activityStats.DroppedDates > 0 {
		logger.Debug().
			Int("rows", activityStats.DroppedDates).
			Msg("Dropped activity rows without a usable date")
	}

	result.Metadata.StartTime = start
	result.Metadata.EndTime = time.Now()
	result.Metadata.Duration = result.Metadata.EndTime.Sub(start)

	logger.Info().
		Int("entities", stats.Entities).
		Int("contracts", stats.ContractRows).
		Int("activities", len(result.Activity)).
		Dur("duration", result.Metadata.Duration).
		Msg("Tables normalized")

	return result, nil
}

func normalize(logger *zerolog.Logger, n *schema.Normalizer, result *Result, raw *table.Raw, kind table.Kind) *table.Normalized {
	out, res := n.Normalize(raw, kind)
	result.Resolutions[kind] = res
	for _, f := range res.Missing {
		logger.Debug().
			Str("table", string(kind)).
			Str("field", string(f)).
			Strs("suggestions", res.Suggestions[f]).
			Msg("No header matched, using default value")
	}
	return out
}

func orEmpty(r links.Result, kind links.Kind) links.Result {
	if r.Status == "" {
		r.Status = links.StatusUnconfigured
	}
	if r.Kind == "" {
		r.Kind = kind
	}
	if r.Links == nil {
		r.Links = map[string]string{}
	}
	return r
}
