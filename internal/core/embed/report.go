package embed

import (
	"fmt"
	"strings"
	"time"

	"bukatsu/internal/core/sanitize"
)

// Activity is a catalog entry referenced by a report
type Activity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Emoji    string `json:"emoji"`
	IsCustom bool   `json:"isCustom,omitempty"`
}

// Report accumulates an activity report embed. The zero value is not useful,
// start with New. Every With step returns a new value, so partial reports
// can be reused freely
type Report struct {
	e Embed
}

// New starts a report with the display title for the given activity.
// Catalog names are trusted; a custom name is user input and gets the full
// title sanitizer
func New(a Activity, customName string) Report {
	var title string
	switch {
	case a.IsCustom:
		title = sanitize.Title(strings.TrimSpace(customName))
	case a.Emoji != "":
		title = a.Emoji + " " + a.Name
	default:
		title = a.Name
	}
	return Report{e: Embed{Title: title, Color: ColorReport}}
}

// WithDateTime appends the 活動日時 field
func (r Report) WithDateTime(date, start, end string) Report {
	r.e.Fields = append(r.e.Fields[:len(r.e.Fields):len(r.e.Fields)], Field{
		Name:   "活動日時",
		Value:  FormatDateTimeRange(date, start, end),
		Inline: true,
	})
	return r
}

// WithParticipants appends the 活動人数 field
func (r Report) WithParticipants(n int) Report {
	r.e.Fields = append(r.e.Fields[:len(r.e.Fields):len(r.e.Fields)], Field{
		Name:   "活動人数",
		Value:  fmt.Sprintf("%d名", n),
		Inline: true,
	})
	return r
}

// WithContent appends the 活動内容 field when content is non-blank
func (r Report) WithContent(content string) Report {
	content = strings.TrimSpace(content)
	if content == "" {
		return r
	}
	r.e.Fields = append(r.e.Fields[:len(r.e.Fields):len(r.e.Fields)], Field{
		Name:   "活動内容",
		Value:  sanitize.FieldValue(content),
		Inline: false,
	})
	return r
}

// WithXLink appends the X (Twitter) field when link is non-empty.
// The caller is expected to pass an already normalized link
func (r Report) WithXLink(link string) Report {
	if link == "" {
		return r
	}
	r.e.Fields = append(r.e.Fields[:len(r.e.Fields):len(r.e.Fields)], Field{
		Name:   "X (Twitter)",
		Value:  link,
		Inline: false,
	})
	return r
}

// WithImage points the embed image at an uploaded attachment
func (r Report) WithImage(filename string) Report {
	if filename == "" {
		return r
	}
	r.e.Image = &Image{URL: "attachment://" + filename}
	return r
}

// WithSubmitter sets the footer to the submitting member
func (r Report) WithSubmitter(name, iconURL string) Report {
	r.e.Footer = &Footer{
		Text:    sanitize.Truncate(name, sanitize.LimitFooterText),
		IconURL: iconURL,
	}
	return r
}

// WithTimestamp stamps the embed with the composition instant
func (r Report) WithTimestamp(t time.Time) Report {
	r.e.Timestamp = t.UTC().Format(time.RFC3339)
	return r
}

// Embed returns the accumulated embed value
func (r Report) Embed() Embed { return r.e }

// ComposeInput carries everything Compose needs for one report
type ComposeInput struct {
	Activity         Activity
	CustomName       string
	Date             string // YYYY-MM-DD
	StartTime        string // HH:mm
	EndTime          string // HH:mm
	ParticipantCount int
	Content          string
	XLink            string // normalized, empty when absent
	ImageFilename    string
	SubmitterName    string
	SubmitterIconURL string
	Now              time.Time
}

// Compose folds the report steps into a single embed
func Compose(in ComposeInput) Embed {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	return New(in.Activity, in.CustomName).
		WithDateTime(in.Date, in.StartTime, in.EndTime).
		WithParticipants(in.ParticipantCount).
		WithContent(in.Content).
		WithXLink(in.XLink).
		WithImage(in.ImageFilename).
		WithSubmitter(in.SubmitterName, in.SubmitterIconURL).
		WithTimestamp(now).
		Embed()
}
