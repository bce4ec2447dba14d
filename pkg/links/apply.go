package links

import "github.com/agentstation/kolmap/pkg/schema"

// Apply returns a copy of entities with the auto links looked up by name and
// PDFLink and Photo filled from them where no explicit link is present.
func Apply(entities []schema.Entity, pdf, photo Result) []schema.Entity {
	out := make([]schema.Entity, len(entities))
	for i, e := range entities {
		e.AutoPDFLink, _ = pdf.Lookup(e.Name)
		e.AutoPhotoLink, _ = photo.Lookup(e.Name)
		e.PDFLink = Prefer(e.PDFLink, e.AutoPDFLink)
		e.Photo = Prefer(e.Photo, e.AutoPhotoLink)
		out[i] = e
	}
	return out
}
