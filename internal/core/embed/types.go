// Package embed composes Discord embed payloads for activity reports
package embed

import "time"

// Embed is the wire shape Discord expects for a rich embed
type Embed struct {
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	URL         string  `json:"url,omitempty"`
	Timestamp   string  `json:"timestamp,omitempty"`
	Color       int     `json:"color,omitempty"`
	Footer      *Footer `json:"footer,omitempty"`
	Image       *Image  `json:"image,omitempty"`
	Author      *Author `json:"author,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
}

// Field is a single name/value pair on an embed
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Footer identifies the submitter at the bottom of the embed
type Footer struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

// Image references an uploaded attachment or an external URL
type Image struct {
	URL string `json:"url"`
}

// Author is the byline block at the top of an embed
type Author struct {
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

// PostMetadata is what the link preview fetcher hands to the composer
type PostMetadata struct {
	// Title is the author byline, "{name} (@{screen_name})"
	Title string
	// Text is the post body, may be empty
	Text string
	// URL is the canonical post link
	URL string
	// AvatarURL is the author profile image, may be empty
	AvatarURL string
	// Images holds photo URLs in post order
	Images []string
	// CreatedAt is the post time, zero when unknown
	CreatedAt time.Time
}

// Empty reports whether the metadata carries nothing worth rendering
func (m *PostMetadata) Empty() bool {
	return m == nil || (m.Text == "" && len(m.Images) == 0)
}

const (
	// ColorReport is Discord blurple, used for the report embed
	ColorReport = 0x5865F2
	// ColorPreview is the X brand blue, used for link preview embeds
	ColorPreview = 0x1D9BF0
)
