package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Me fetches the bot's own user with the bot token. Used for readiness
func (c *Client) Me(ctx context.Context) (User, error) {
	resp, err := c.do(ctx, http.MethodGet, "/users/@me", c.botAuth(), nil, "")
	if err != nil {
		return User{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return User{}, c.statusErr(resp, "me")
	}
	defer c.closeBody(resp, "/users/@me")
	return decode[User](resp.Body)
}

// Ping verifies the bot token, satisfies the meta readiness Pinger
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Me(ctx)
	return err
}

// Identity fetches the user behind an OAuth bearer token
func (c *Client) Identity(ctx context.Context, bearer string) (User, error) {
	resp, err := c.do(ctx, http.MethodGet, "/users/@me", "Bearer "+bearer, nil, "")
	if err != nil {
		return User{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return User{}, c.statusErr(resp, "identity")
	}
	defer c.closeBody(resp, "/users/@me")
	return decode[User](resp.Body)
}

// UserGuilds lists the guilds of the user behind an OAuth bearer token
func (c *Client) UserGuilds(ctx context.Context, bearer string) ([]Guild, error) {
	resp, err := c.do(ctx, http.MethodGet, "/users/@me/guilds", "Bearer "+bearer, nil, "")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.statusErr(resp, "user guilds")
	}
	defer c.closeBody(resp, "/users/@me/guilds")
	return decode[[]Guild](resp.Body)
}

// BotGuilds lists the guilds the bot is installed in
func (c *Client) BotGuilds(ctx context.Context) ([]Guild, error) {
	resp, err := c.do(ctx, http.MethodGet, "/users/@me/guilds", c.botAuth(), nil, "")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.statusErr(resp, "bot guilds")
	}
	defer c.closeBody(resp, "/users/@me/guilds")
	return decode[[]Guild](resp.Body)
}

// GuildMember fetches a member of a guild with the bot token
// A missing member comes back as a not found error
func (c *Client) GuildMember(ctx context.Context, guildID, userID string) (Member, error) {
	path := fmt.Sprintf("/guilds/%s/members/%s", guildID, userID)
	resp, err := c.do(ctx, http.MethodGet, path, c.botAuth(), nil, "")
	if err != nil {
		return Member{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return Member{}, c.statusErr(resp, "guild member")
	}
	defer c.closeBody(resp, path)
	return decode[Member](resp.Body)
}

func decode[T any](r io.Reader) (T, error) {
	var out T
	b, err := io.ReadAll(io.LimitReader(r, 1<<20))
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, err
	}
	return out, nil
}
