// Package drive lists Google Drive folders for the PDF and photo link
// mappings.
package drive

import (
	"context"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/agentstation/kolmap/internal/sources"
	"github.com/agentstation/kolmap/pkg/constants"
	"github.com/agentstation/kolmap/pkg/errors"
	"github.com/agentstation/kolmap/pkg/links"
	"github.com/agentstation/kolmap/pkg/logging"
)

// SourceName identifies this source in errors and logs.
const SourceName = "drive"

// Lister implements links.Lister over the Drive files API.
type Lister struct {
	svc *drive.Service
}

// New creates a lister. opts carry credentials and, in tests, the endpoint.
func New(ctx context.Context, opts ...option.ClientOption) (*Lister, error) {
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.NewSourceError(SourceName, errors.SourceKindAuth, err)
	}
	return &Lister{svc: svc}, nil
}

// ListFiles returns the non-trashed files directly inside folderID,
// following every result page.
func (l *Lister) ListFiles(ctx context.Context, folderID string, kind links.Kind) ([]links.File, error) {
	if strings.TrimSpace(folderID) == "" {
		return nil, errors.NewSourceError(SourceName, errors.SourceKindConfig, errors.New("folder id is empty"))
	}

	pageSize, fields := listSettings(kind)
	call := l.svc.Files.List().
		Q(Query(folderID)).
		Fields(fields).
		PageSize(pageSize).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true)

	var files []links.File
	err := call.Pages(ctx, func(page *drive.FileList) error {
		for _, f := range page.Files {
			files = append(files, links.File{
				ID:            f.Id,
				Name:          f.Name,
				ViewLink:      f.WebViewLink,
				ThumbnailLink: f.ThumbnailLink,
			})
		}
		return nil
	})
	if err != nil {
		return nil, sources.Classify(SourceName, err)
	}

	logging.FromContext(ctx).Debug().
		Str("kind", string(kind)).
		Int("files", len(files)).
		Msg("Listed drive folder")
	return files, nil
}

// Query builds the files query for the direct children of folderID.
func Query(folderID string) string {
	id := strings.ReplaceAll(strings.TrimSpace(folderID), `'`, `\'`)
	return "'" + id + "' in parents and trashed=false"
}

func listSettings(kind links.Kind) (int64, googleapi.Field) {
	if kind == links.KindPhoto {
		return constants.PhotoPageSize, "nextPageToken, files(id, name, webViewLink, thumbnailLink)"
	}
	return constants.PDFPageSize, "nextPageToken, files(id, name, webViewLink)"
}
