package pipeline_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/kolmap/pkg/errors"
	"github.com/agentstation/kolmap/pkg/links"
	"github.com/agentstation/kolmap/pkg/pipeline"
	"github.com/agentstation/kolmap/pkg/table"
)

type fakeSource struct {
	mu     sync.Mutex
	tables map[string]*table.Raw
	errs   map[string]error
	block  map[string]bool
	calls  map[string]int
}

func newFakeSource() *fakeSource {
	in := sampleInput()
	return &fakeSource{
		tables: map[string]*table.Raw{
			"kol_master":     in.Master,
			"contract_tasks": in.Contract,
			"activity_log":   in.Activity,
		},
		errs:  map[string]error{},
		block: map[string]bool{},
		calls: map[string]int{},
	}
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) FetchTable(ctx context.Context, name string) (*table.Raw, error) {
	f.mu.Lock()
	f.calls[name]++
	err, block := f.errs[name], f.block[name]
	raw := f.tables[name]
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

type fakeLister struct {
	files map[string][]links.File
	err   error
}

func (f *fakeLister) ListFiles(_ context.Context, folderID string, _ links.Kind) ([]links.File, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.files[folderID], nil
}

func TestLoaderLoad(t *testing.T) {
	src := newFakeSource()
	lister := &fakeLister{files: map[string][]links.File{
		"photos": {{Name: "B.jpg", ThumbnailLink: "https://thumb/b"}},
	}}

	loader, err := pipeline.NewLoader(src, pipeline.WithLinks(lister, "pdfs", "photos"))
	require.NoError(t, err)

	res, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Master, 2)
	b, _ := res.Entity("B")
	assert.Equal(t, "https://thumb/b", b.Photo)
	assert.Equal(t, "https://thumb/b", b.AutoPhotoLink)
	assert.Equal(t, links.StatusOK, res.PhotoLinks.Status)
	assert.Equal(t, links.StatusOK, res.PDFLinks.Status)

	// no cache between loads
	_, err = loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls["kol_master"])
}

func TestLoaderTableFailure(t *testing.T) {
	src := newFakeSource()
	src.errs["contract_tasks"] = errors.NewSourceError("fake", errors.SourceKindUnavailable, errors.New("503"))
	src.block["activity_log"] = true

	loader, err := pipeline.NewLoader(src)
	require.NoError(t, err)

	res, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.IsLoadFailure(err))
	assert.True(t, errors.IsSourceUnavailable(err))

	var le *errors.LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "contract_tasks", le.Table)
}

func TestLoaderTimeout(t *testing.T) {
	src := newFakeSource()
	src.block["kol_master"] = true

	loader, err := pipeline.NewLoader(src, pipeline.WithFetchTimeout(20*time.Millisecond))
	require.NoError(t, err)

	_, err = loader.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsLoadFailure(err))
	assert.True(t, errors.IsTimeout(err))
}

func TestLoaderLinkFailureDoesNotFailLoad(t *testing.T) {
	lister := &fakeLister{err: errors.NewSourceError("drive", errors.SourceKindMalformed, errors.New("bad json"))}
	loader, err := pipeline.NewLoader(newFakeSource(), pipeline.WithLinks(lister, "pdfs", "photos"))
	require.NoError(t, err)

	res, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, links.StatusError, res.PDFLinks.Status)
	kind, ok := res.PDFLinks.FailureKind()
	require.True(t, ok)
	assert.Equal(t, errors.SourceKindMalformed, kind)

	a, _ := res.Entity("A")
	assert.Empty(t, a.AutoPDFLink)
}

func TestLoaderMissingTable(t *testing.T) {
	src := newFakeSource()
	delete(src.tables, "activity_log")

	loader, err := pipeline.NewLoader(src)
	require.NoError(t, err)
	_, err = loader.Load(context.Background())
	assert.True(t, errors.IsLoadFailure(err))
	assert.True(t, errors.IsNotFound(err))
}

func TestLoaderCustomTabs(t *testing.T) {
	src := newFakeSource()
	src.tables["m"] = src.tables["kol_master"]
	src.tables["c"] = src.tables["contract_tasks"]
	src.tables["a"] = src.tables["activity_log"]

	loader, err := pipeline.NewLoader(src, pipeline.WithTabs("m", "c", "a"))
	require.NoError(t, err)
	assert.Equal(t, "m", loader.Tabs()[table.KindMaster])

	_, err = loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls["m"])
	assert.Zero(t, src.calls["kol_master"])
}

func TestNewLoaderValidation(t *testing.T) {
	_, err := pipeline.NewLoader(nil)
	assert.True(t, errors.IsValidationError(err))

	_, err = pipeline.NewLoader(newFakeSource(), pipeline.WithTabs("", "c", "a"))
	assert.True(t, errors.IsValidationError(err))

	_, err = pipeline.NewLoader(newFakeSource(), pipeline.WithFetchTimeout(-time.Second))
	assert.True(t, errors.IsValidationError(err))

	_, err = pipeline.NewLoader(newFakeSource(), pipeline.WithLinks(nil, "a", "b"))
	assert.True(t, errors.IsValidationError(err))
}
