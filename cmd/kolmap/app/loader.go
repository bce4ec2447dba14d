package app

import (
	"context"
	"strings"

	"github.com/agentstation/kolmap/internal/auth"
	"github.com/agentstation/kolmap/internal/cache"
	"github.com/agentstation/kolmap/internal/embedded"
	"github.com/agentstation/kolmap/internal/sources/drive"
	"github.com/agentstation/kolmap/internal/sources/gsheets"
	"github.com/agentstation/kolmap/internal/sources/xlsx"
	"github.com/agentstation/kolmap/internal/sources/yamlfile"
	"github.com/agentstation/kolmap/pkg/errors"
	"github.com/agentstation/kolmap/pkg/links"
	"github.com/agentstation/kolmap/pkg/logging"
	"github.com/agentstation/kolmap/pkg/pipeline"
)

// buildLoader wires the configured table source, the optional Drive lister
// and the optional cache into a loader. Must be called with a.mu held.
func (a *App) buildLoader(ctx context.Context) (*pipeline.Loader, error) {
	logger := logging.FromContext(ctx)
	cfg := a.config

	// Step 1: Table source
	source, err := a.tableSource(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.CacheTTL > 0 {
		cached := cache.NewSource(source, cfg.CacheTTL)
		a.caches = append(a.caches, cached.Cache)
		source = cached
	}

	opts := []pipeline.Option{
		pipeline.WithTabs(cfg.MasterTab, cfg.ContractTab, cfg.ActivityTab),
		pipeline.WithFetchTimeout(cfg.FetchTimeout),
	}

	// Step 2: Drive listings; credential problems disable auto links only
	if cfg.LinksEnabled() {
		lister, err := a.linkLister(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("Drive listing unavailable, continuing without auto links")
		} else {
			opts = append(opts, pipeline.WithLinks(lister, cfg.PDFFolderID, cfg.PhotoFolderID))
		}
	}

	logger.Debug().
		Str("source", source.Name()).
		Bool("links", cfg.LinksEnabled()).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Loader configured")

	return pipeline.NewLoader(source, opts...)
}

// tableSource creates the source selected by configuration.
func (a *App) tableSource(ctx context.Context) (pipeline.TableSource, error) {
	cfg := a.config
	switch kind := cfg.ResolveSource(); kind {
	case SourceXLSX:
		if strings.TrimSpace(cfg.Workbook) == "" {
			return nil, errors.NewConfigError(SourceXLSX, "workbook path is required", nil)
		}
		return xlsx.New(cfg.Workbook), nil
	case SourceSheets:
		opts, err := auth.ClientOptions(ctx, cfg.Auth(), auth.ScopeSheetsReadonly)
		if err != nil {
			return nil, err
		}
		return gsheets.New(ctx, cfg.SpreadsheetID, opts...)
	case SourceYAML:
		if strings.TrimSpace(cfg.Dataset) == "" {
			return nil, errors.NewConfigError(SourceYAML, "dataset path is required", nil)
		}
		return yamlfile.New(cfg.Dataset), nil
	case SourceSample:
		return yamlfile.NewFromFS(embedded.FS, embedded.SamplePath), nil
	default:
		return nil, &errors.ValidationError{
			Field:   "source",
			Value:   kind,
			Message: "must be one of: xlsx, sheets, yaml, sample",
		}
	}
}

// linkLister creates the Drive lister used for auto links.
func (a *App) linkLister(ctx context.Context) (links.Lister, error) {
	opts, err := auth.ClientOptions(ctx, a.config.Auth(), auth.ScopeDriveReadonly)
	if err != nil {
		return nil, err
	}
	lister, err := drive.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if a.config.CacheTTL > 0 {
		cached := cache.NewLister(lister, a.config.CacheTTL)
		a.caches = append(a.caches, cached.Cache)
		return cached, nil
	}
	return lister, nil
}
