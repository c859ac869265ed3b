// Package discord provides a minimal Discord REST v10 client for the report
// service: member lookups, identity reads, and channel message dispatch
package discord

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	perr "bukatsu/internal/platform/errors"
	"bukatsu/internal/platform/logger"
)

const (
	baseURLDefault = "https://discord.com/api/v10"
	cdnBaseDefault = "https://cdn.discordapp.com"
	defaultTimeout = 10 * time.Second
	defaultUA      = "bukatsu-api"
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// BotToken authenticates privileged calls (member lookup, dispatch)
	BotToken string
}

// Client is a thin Discord REST client. No retries; a failed dispatch is
// surfaced to the caller rather than re-sent
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
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
		log:  *logger.Named("discord"),
		now:  time.Now,
	}
}

// botAuth is the Authorization header value for bot-token calls
func (c *Client) botAuth() string { return "Bot " + c.opts.BotToken }

// do issues a request and logs lightweight response metadata
// auth is the full Authorization header value ("Bot xxx" or "Bearer yyy")
func (c *Client) do(ctx context.Context, method, path, auth string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.opts.BaseURL+path, body)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "discord new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "discord do failed")
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("discord http response")

	return resp, nil
}

// statusErr converts a non-2xx response into a typed error, reading a small
// body tail for diagnostics
func (c *Client) statusErr(resp *http.Response, what string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	_ = resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusNotFound:
		return perr.NotFoundf("discord %s not found", what)
	case http.StatusUnauthorized, http.StatusForbidden:
		return perr.Upstreamf("discord %s denied with status %d", what, resp.StatusCode)
	case http.StatusTooManyRequests:
		return perr.Newf(perr.ErrorCodeTooManyRequests, "discord %s rate limited", what)
	default:
		return perr.Upstreamf("discord %s unexpected status %d body %s", what, resp.StatusCode, string(body))
	}
}

func (c *Client) closeBody(resp *http.Response, path string) {
	if cerr := resp.Body.Close(); cerr != nil {
		c.log.Error().Err(cerr).Str("path", path).Msg("discord close body failed")
	}
}

// AvatarURL returns the CDN avatar for a user, falling back to one of the
// five default avatars keyed by the numeric id
func AvatarURL(userID, avatarHash string) string {
	if avatarHash != "" {
		return fmt.Sprintf("%s/avatars/%s/%s.png", cdnBaseDefault, userID, avatarHash)
	}
	return fmt.Sprintf("%s/embed/avatars/%d.png", cdnBaseDefault, defaultAvatarIndex(userID))
}

// defaultAvatarIndex maps a snowflake id onto the 0..4 default avatar range
func defaultAvatarIndex(userID string) uint64 {
	var n uint64
	for _, r := range userID {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + uint64(r-'0')
	}
	return n % 5
}
