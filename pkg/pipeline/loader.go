package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agentstation/kolmap/pkg/errors"
	"github.com/agentstation/kolmap/pkg/links"
	"github.com/agentstation/kolmap/pkg/logging"
	"github.com/agentstation/kolmap/pkg/table"
)

// TableSource fetches raw tables by name.
type TableSource interface {
	// Name identifies the source in logs and errors.
	Name() string
	// FetchTable returns the raw table called name.
	FetchTable(ctx context.Context, name string) (*table.Raw, error)
}

// Loader fetches the raw tables and link listings and runs the pipeline.
// It keeps no data between calls: every Load fetches again.
type Loader struct {
	source TableSource
	opts   *options
}

// NewLoader creates a loader over source.
func NewLoader(source TableSource, opts ...Option) (*Loader, error) {
	if source == nil {
		return nil, &errors.ValidationError{Field: "source", Message: "cannot be nil"}
	}
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Loader{source: source, opts: o}, nil
}

// Tabs returns the configured table names keyed by kind.
func (l *Loader) Tabs() map[table.Kind]string {
	return map[table.Kind]string{
		table.KindMaster:   l.opts.masterTab,
		table.KindContract: l.opts.contractTab,
		table.KindActivity: l.opts.activityTab,
	}
}

// Load fetches the three tables concurrently, then the link listings, and
// runs the pipeline. Any table failure cancels the other fetches and yields a
// single *errors.LoadError with no tables. Link failures never fail a load.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	ctx = logging.WithSource(ctx, l.source.Name())
	logger := logging.FromContext(ctx)

	in, err := l.Fetch(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load tables")
		return nil, err
	}
	in.Registry = l.opts.registry
	return Run(ctx, *in)
}

// Fetch acquires the raw input of a run without processing it.
func (l *Loader) Fetch(ctx context.Context) (*Input, error) {
	var in Input

	g, gctx := errgroup.WithContext(ctx)
	fetch := func(kind table.Kind, tab string, dst **table.Raw) {
		g.Go(func() error {
			raw, err := l.fetchTable(gctx, kind, tab)
			if err != nil {
				return err
			}
			*dst = raw
			return nil
		})
	}
	fetch(table.KindMaster, l.opts.masterTab, &in.Master)
	fetch(table.KindContract, l.opts.contractTab, &in.Contract)
	fetch(table.KindActivity, l.opts.activityTab, &in.Activity)

	// Link listings run alongside and never fail the group.
	var pdf, photo links.Result
	g.Go(func() error {
		pdf = l.fetchLinks(gctx, l.opts.pdfFolder, links.KindPDF)
		return nil
	})
	g.Go(func() error {
		photo = l.fetchLinks(gctx, l.opts.photoFolder, links.KindPhoto)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	in.PDFLinks = pdf
	in.PhotoLinks = photo
	return &in, nil
}

func (l *Loader) fetchTable(ctx context.Context, kind table.Kind, tab string) (*table.Raw, error) {
	ctx = logging.WithTable(ctx, tab)
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	raw, err := l.source.FetchTable(ctx, tab)
	if err == nil && raw == nil {
		err = errors.NewNotFoundError("table", tab)
	}
	if err != nil {
		return nil, errors.NewLoadError(tab, classify(ctx, err))
	}

	logging.FromContext(ctx).Debug().
		Str("kind", string(kind)).
		Int("rows", raw.Len()).
		Dur("duration", time.Since(start)).
		Msg("Fetched table")
	return raw, nil
}

func (l *Loader) fetchLinks(ctx context.Context, folder string, kind links.Kind) links.Result {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()
	return links.Fetch(ctx, l.opts.lister, folder, kind)
}

func (l *Loader) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if l.opts.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, l.opts.timeout)
}

// classify tags context failures with the timeout and cancel sentinels.
func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", errors.ErrTimeout, err)
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return fmt.Errorf("%w: %w", errors.ErrCanceled, err)
	}
	return err
}
