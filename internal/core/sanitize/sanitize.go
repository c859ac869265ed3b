// Package sanitize neutralizes Discord mentions and markdown in user text
// destined for embeds, and enforces the embed size limits
package sanitize

import (
	"regexp"
	"strings"
)

// Discord embed size limits in runes
const (
	LimitTitle       = 256
	LimitDescription = 4096
	LimitFieldName   = 256
	LimitFieldValue  = 1024
	LimitFooterText  = 2048
	LimitAuthorName  = 256
	LimitTotal       = 6000
)

// zero width space, breaks mention parsing without changing the visible text
const zwsp = "​"

var (
	reEveryone = regexp.MustCompile(`(?i)@(everyone|here)`)
	reUser     = regexp.MustCompile(`<@!?(\d+)>`)
	reRole     = regexp.MustCompile(`<@&(\d+)>`)
)

// EscapeMentions defuses @everyone/@here, user mentions and role mentions
func EscapeMentions(s string) string {
	if s == "" {
		return s
	}
	s = reEveryone.ReplaceAllString(s, "@"+zwsp+"$1")
	s = reUser.ReplaceAllString(s, "<@"+zwsp+"$1>")
	s = reRole.ReplaceAllString(s, "<@"+zwsp+"&$1>")
	return s
}

var markdownEscaper = strings.NewReplacer(
	`*`, `\*`,
	`_`, `\_`,
	`~`, `\~`,
	"`", "\\`",
	`|`, `\|`,
	`\`, `\\`,
	`>`, `\>`,
	`#`, `\#`,
)

// EscapeMarkdown backslash-escapes the markdown control characters * _ ~ ` | \ > #
func EscapeMarkdown(s string) string {
	if s == "" {
		return s
	}
	return markdownEscaper.Replace(s)
}

// Truncate cuts s to at most max runes. When cut, the result is exactly max
// runes ending in a single ellipsis. A non-positive max yields the empty string
func Truncate(s string, max int) string {
	if s == "" || max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// Title sanitizes text for an embed title: mentions, then markdown, then the
// 256 rune limit
func Title(s string) string {
	if s == "" {
		return s
	}
	return Truncate(EscapeMarkdown(EscapeMentions(s)), LimitTitle)
}

// FieldValue sanitizes text for an embed field value. Markdown is preserved
// so submitters can format their reports
func FieldValue(s string) string {
	if s == "" {
		return s
	}
	return Truncate(EscapeMentions(s), LimitFieldValue)
}
