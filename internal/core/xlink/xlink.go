// Package xlink normalizes X (Twitter) post links
package xlink

import (
	"net/url"
	"regexp"
	"strings"
)

var reStatus = regexp.MustCompile(`/status/(\d+)`)

func allowedHost(h string) bool {
	return h == "x.com" || h == "twitter.com"
}

// Normalize strips the query string from an X/Twitter post link
// Returns false for anything that is not an x.com or twitter.com URL
func Normalize(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || !allowedHost(u.Hostname()) {
		return "", false
	}
	u.RawQuery = ""
	return u.String(), true
}

// StatusID extracts the numeric status id from an X/Twitter post link
func StatusID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || !allowedHost(u.Hostname()) {
		return "", false
	}
	m := reStatus.FindStringSubmatch(u.Path)
	if m == nil {
		return "", false
	}
	return m[1], true
}
