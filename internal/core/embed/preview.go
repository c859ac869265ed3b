package embed

import (
	"time"

	"bukatsu/internal/core/sanitize"
)

// PreviewEmbeds renders X post metadata as a preview gallery.
// The first embed carries the byline, text and timestamp; each further image
// becomes its own embed sharing the post URL so Discord groups them into a
// gallery. Returns nil when there is nothing to render
func PreviewEmbeds(meta *PostMetadata) []Embed {
	if meta.Empty() {
		return nil
	}

	first := Embed{Color: ColorPreview, URL: meta.URL}
	if meta.Title != "" {
		first.Author = &Author{
			Name:    sanitize.Truncate(meta.Title, sanitize.LimitAuthorName),
			IconURL: meta.AvatarURL,
			URL:     meta.URL,
		}
	}
	if meta.Text != "" {
		first.Description = sanitize.Truncate(meta.Text, sanitize.LimitDescription)
	}
	if !meta.CreatedAt.IsZero() {
		first.Timestamp = meta.CreatedAt.UTC().Format(time.RFC3339)
	}
	if len(meta.Images) > 0 {
		first.Image = &Image{URL: meta.Images[0]}
	}

	out := []Embed{first}
	if len(meta.Images) > 1 {
		for _, img := range meta.Images[1:] {
			out = append(out, Embed{
				Color: ColorPreview,
				URL:   meta.URL,
				Image: &Image{URL: img},
			})
		}
	}
	return out
}
