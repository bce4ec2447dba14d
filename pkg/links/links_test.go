package links_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/kolmap/pkg/errors"
	"github.com/agentstation/kolmap/pkg/links"
	"github.com/agentstation/kolmap/pkg/logging"
	"github.com/agentstation/kolmap/pkg/schema"
)

type fakeLister struct {
	files  []links.File
	err    error
	folder string
	kind   links.Kind
}

func (f *fakeLister) ListFiles(_ context.Context, folderID string, kind links.Kind) ([]links.File, error) {
	f.folder = folderID
	f.kind = kind
	return f.files, f.err
}

func TestPDFKey(t *testing.T) {
	tests := map[string]string{
		"Dr. Kim.pdf":    "Dr. Kim",
		"Dr. Kim .PDF":   "Dr. Kim",
		"  notes.txt ":   "notes.txt",
		"report.pdf.pdf": "report.pdf",
		"plain":          "plain",
		".pdf":           "",
	}
	for in, want := range tests {
		assert.Equal(t, want, links.PDFKey(in), in)
	}
}

func TestPhotoKey(t *testing.T) {
	tests := map[string]string{
		"Dr. Kim.jpg":  "Dr. Kim",
		"Lee .png":     "Lee",
		"no extension": "no extension",
		"a.b.c.jpeg":   "a.b.c",
	}
	for in, want := range tests {
		assert.Equal(t, want, links.PhotoKey(in), in)
	}
}

func TestBuild(t *testing.T) {
	files := []links.File{
		{Name: "A.jpg", ViewLink: "view-a", ThumbnailLink: "thumb-a"},
		{Name: "B.png", ViewLink: "view-b"},
		{Name: "C.png"},
		{Name: "A.jpeg", ThumbnailLink: "thumb-a2"},
	}
	got := links.Build(files, links.KindPhoto)
	assert.Equal(t, map[string]string{"A": "thumb-a2", "B": "view-b"}, got)

	pdf := links.Build([]links.File{{Name: "A.pdf", ViewLink: "v", ThumbnailLink: "t"}}, links.KindPDF)
	assert.Equal(t, map[string]string{"A": "v"}, pdf)
}

func TestFetchOK(t *testing.T) {
	l := &fakeLister{files: []links.File{{Name: "A.pdf", ViewLink: "https://drive/a"}}}
	res := links.Fetch(context.Background(), l, "folder-1", links.KindPDF)

	assert.Equal(t, links.StatusOK, res.Status)
	assert.NoError(t, res.Err)
	assert.Equal(t, "folder-1", l.folder)
	assert.Equal(t, links.KindPDF, l.kind)
	u, ok := res.Lookup(" A ")
	require.True(t, ok)
	assert.Equal(t, "https://drive/a", u)
}

func TestFetchErrorDegradesToEmpty(t *testing.T) {
	logs := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), logs.Logger)

	cause := errors.NewSourceError("drive", errors.SourceKindAuth, errors.New("token expired"))
	res := links.Fetch(ctx, &fakeLister{err: cause}, "folder-1", links.KindPhoto)

	assert.Equal(t, links.StatusError, res.Status)
	assert.Empty(t, res.Map())
	assert.True(t, errors.IsUnauthorized(res.Err))
	kind, ok := res.FailureKind()
	require.True(t, ok)
	assert.Equal(t, errors.SourceKindAuth, kind)
	assert.True(t, logs.Contains("link listing failed"))
}

func TestFetchUnconfigured(t *testing.T) {
	res := links.Fetch(context.Background(), &fakeLister{}, " ", links.KindPDF)
	assert.Equal(t, links.StatusUnconfigured, res.Status)
	assert.NotNil(t, res.Map())

	res = links.Fetch(context.Background(), nil, "folder", links.KindPDF)
	assert.Equal(t, links.StatusUnconfigured, res.Status)
	_, ok := res.FailureKind()
	assert.False(t, ok)
}

func TestPrefer(t *testing.T) {
	assert.Equal(t, "manual", links.Prefer(" manual ", "auto"))
	assert.Equal(t, "auto", links.Prefer("-", "auto"))
	assert.Equal(t, "auto", links.Prefer("", "auto"))
	assert.Equal(t, "", links.Prefer("-", ""))
}

func TestApply(t *testing.T) {
	entities := []schema.Entity{
		{Name: "A", PDFLink: "-"},
		{Name: "B", PDFLink: "https://manual/b", Photo: ""},
		{Name: "C"},
	}
	pdf := links.Result{Kind: links.KindPDF, Status: links.StatusOK, Links: map[string]string{"A": "auto-a", "B": "auto-b"}}
	photo := links.Result{Kind: links.KindPhoto, Status: links.StatusOK, Links: map[string]string{"B": "thumb-b"}}

	got := links.Apply(entities, pdf, photo)
	require.Len(t, got, 3)
	assert.Equal(t, "auto-a", got[0].PDFLink)
	assert.Equal(t, "auto-a", got[0].AutoPDFLink)
	assert.Equal(t, "https://manual/b", got[1].PDFLink)
	assert.Equal(t, "auto-b", got[1].AutoPDFLink)
	assert.Equal(t, "thumb-b", got[1].Photo)
	assert.Empty(t, got[2].PDFLink)
	assert.Equal(t, "-", entities[0].PDFLink, "input must not change")
}
