// Package fxtwitter fetches X post metadata through the fxtwitter API.
// Every failure degrades to a nil result; a broken preview must never block
// a report
package fxtwitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bukatsu/internal/core/embed"
	"bukatsu/internal/core/xlink"
	"bukatsu/internal/platform/logger"
)

const (
	baseURLDefault = "https://api.fxtwitter.com"
	defaultTimeout = 5 * time.Second
	defaultUA      = "bukatsu-api"
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client is a best-effort metadata fetcher
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("fxtwitter"),
	}
}

// envelope mirrors the fxtwitter response shape
type envelope struct {
	Code  int    `json:"code"`
	Tweet *tweet `json:"tweet"`
}

type tweet struct {
	Text             string  `json:"text"`
	URL              string  `json:"url"`
	CreatedTimestamp int64   `json:"created_timestamp"`
	Author           *author `json:"author"`
	Media            *media  `json:"media"`
}

type author struct {
	Name       string `json:"name"`
	ScreenName string `json:"screen_name"`
	AvatarURL  string `json:"avatar_url"`
}

type media struct {
	Photos []photo `json:"photos"`
}

type photo struct {
	URL string `json:"url"`
}

// Fetch resolves rawURL to post metadata, or nil when the link is not an
// X post or the lookup fails in any way
func (c *Client) Fetch(ctx context.Context, rawURL string) *embed.PostMetadata {
	cleaned, ok := xlink.Normalize(rawURL)
	if !ok {
		return nil
	}
	id, ok := xlink.StatusID(cleaned)
	if !ok {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/status/%s", c.opts.BaseURL, id), nil)
	if err != nil {
		c.log.Warn().Err(err).Str("status_id", id).Msg("fxtwitter request build failed")
		return nil
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("status_id", id).Msg("fxtwitter fetch failed")
		return nil
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Msg("fxtwitter close body failed")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn().Int("status", resp.StatusCode).Str("status_id", id).Msg("fxtwitter non-2xx")
		return nil
	}

	var env envelope
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		c.log.Warn().Err(err).Str("status_id", id).Msg("fxtwitter read failed")
		return nil
	}
	if err := json.Unmarshal(b, &env); err != nil {
		c.log.Warn().Err(err).Str("status_id", id).Msg("fxtwitter decode failed")
		return nil
	}
	if env.Code != 200 || env.Tweet == nil {
		c.log.Warn().Int("code", env.Code).Str("status_id", id).Msg("fxtwitter envelope rejected")
		return nil
	}

	meta := mapTweet(env.Tweet)
	if meta.Empty() {
		return nil
	}
	return meta
}

func mapTweet(t *tweet) *embed.PostMetadata {
	meta := &embed.PostMetadata{
		Text: t.Text,
		URL:  t.URL,
	}
	if a := t.Author; a != nil {
		switch {
		case a.Name != "" && a.ScreenName != "":
			meta.Title = fmt.Sprintf("%s (@%s)", a.Name, a.ScreenName)
		case a.Name != "":
			meta.Title = a.Name
		}
		meta.AvatarURL = a.AvatarURL
	}
	if t.Media != nil {
		for _, p := range t.Media.Photos {
			meta.Images = append(meta.Images, p.URL)
		}
	}
	if t.CreatedTimestamp > 0 {
		meta.CreatedAt = time.Unix(t.CreatedTimestamp, 0).UTC()
	}
	return meta
}
