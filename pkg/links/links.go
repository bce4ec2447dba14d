// Package links maps entity names to PDF and photo URLs listed in a file
// store folder, and merges them with links entered by hand.
package links

import (
	"context"
	"strings"

	"github.com/agentstation/kolmap/pkg/errors"
	"github.com/agentstation/kolmap/pkg/logging"
)

// Kind selects which file listing a mapping is built from.
type Kind string

const (
	// KindPDF maps names to document view links.
	KindPDF Kind = "pdf"
	// KindPhoto maps names to photo thumbnails.
	KindPhoto Kind = "photo"
)

// Status tags why a mapping has the content it has.
type Status string

const (
	// StatusOK means the listing succeeded; the mapping may still be empty.
	StatusOK Status = "ok"
	// StatusError means the listing failed and the mapping is empty.
	StatusError Status = "error"
	// StatusUnconfigured means no folder or lister was configured.
	StatusUnconfigured Status = "unconfigured"
)

// File is one entry of a folder listing.
type File struct {
	ID            string `json:"id,omitempty" yaml:"id,omitempty"`
	Name          string `json:"name" yaml:"name"`
	ViewLink      string `json:"view_link,omitempty" yaml:"view_link,omitempty"`
	ThumbnailLink string `json:"thumbnail_link,omitempty" yaml:"thumbnail_link,omitempty"`
}

// Lister lists the files of a folder.
type Lister interface {
	ListFiles(ctx context.Context, folderID string, kind Kind) ([]File, error)
}

// Result is a name to URL mapping tagged with how it was obtained.
type Result struct {
	Kind   Kind              `json:"kind"`
	Status Status            `json:"status"`
	Links  map[string]string `json:"links"`
	Err    error             `json:"-"`
}

// Map returns the mapping, never nil.
func (r Result) Map() map[string]string {
	if r.Links == nil {
		return map[string]string{}
	}
	return r.Links
}

// Lookup returns the URL for a trimmed entity name.
func (r Result) Lookup(name string) (string, bool) {
	u, ok := r.Links[strings.TrimSpace(name)]
	return u, ok
}

// Empty returns a successful empty mapping.
func Empty(kind Kind) Result {
	return Result{Kind: kind, Status: StatusOK, Links: map[string]string{}}
}

// Fetch lists folderID and builds the mapping for kind. It never returns an
// error: failures yield an empty mapping with StatusError and the cause in
// Err, and are logged at warn.
func Fetch(ctx context.Context, lister Lister, folderID string, kind Kind) Result {
	logger := logging.FromContext(ctx)
	if lister == nil || strings.TrimSpace(folderID) == "" {
		logger.Debug().Str("kind", string(kind)).Msg("link source not configured")
		return Result{Kind: kind, Status: StatusUnconfigured, Links: map[string]string{}}
	}

	files, err := lister.ListFiles(ctx, folderID, kind)
	if err != nil {
		logger.Warn().Err(err).Str("kind", string(kind)).Str("folder", folderID).Msg("link listing failed, continuing without auto links")
		return Result{Kind: kind, Status: StatusError, Links: map[string]string{}, Err: err}
	}

	m := Build(files, kind)
	logger.Debug().Str("kind", string(kind)).Int("files", len(files)).Int("links", len(m)).Msg("link mapping built")
	return Result{Kind: kind, Status: StatusOK, Links: m}
}

// Build turns a listing into a mapping. Later files override earlier ones
// with the same key; files without a key or a URL are skipped.
func Build(files []File, kind Kind) map[string]string {
	m := make(map[string]string, len(files))
	for _, f := range files {
		var key, url string
		switch kind {
		case KindPhoto:
			key = PhotoKey(f.Name)
			url = f.ThumbnailLink
			if url == "" {
				url = f.ViewLink
			}
		default:
			key = PDFKey(f.Name)
			url = f.ViewLink
		}
		if key == "" || url == "" {
			continue
		}
		m[key] = url
	}
	return m
}

// PDFKey derives the entity name from a document file name: a trailing
// ".pdf" in any case is removed and the rest trimmed.
func PDFKey(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name = name[:len(name)-len(".pdf")]
	}
	return strings.TrimSpace(name)
}

// PhotoKey derives the entity name from a photo file name by removing the
// last extension.
func PhotoKey(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

// Prefer returns explicit unless it is empty or the "-" placeholder, in
// which case auto is returned.
func Prefer(explicit, auto string) string {
	e := strings.TrimSpace(explicit)
	if e == "" || e == "-" {
		return auto
	}
	return e
}

// FailureKind returns the source failure kind of a failed result.
func (r Result) FailureKind() (errors.SourceKind, bool) {
	var se *errors.SourceError
	if r.Err != nil && errors.As(r.Err, &se) {
		return se.Kind, true
	}
	return "", false
}
