package domain

import (
	"context"
	"net/http"

	"bukatsu/internal/adapters/discord"
)

// MemberFetcher is the privileged member lookup the gate depends on
// satisfied by the discord adapter
type MemberFetcher interface {
	GuildMember(ctx context.Context, guildID, userID string) (discord.Member, error)
}

// DirectoryReader covers the user-facing Discord reads the auth handlers
// need, also satisfied by the discord adapter
type DirectoryReader interface {
	Identity(ctx context.Context, accessToken string) (discord.User, error)
	UserGuilds(ctx context.Context, accessToken string) ([]discord.Guild, error)
	BotGuilds(ctx context.Context) ([]discord.Guild, error)
}

// MembershipOf reduces the user's guild list to the one guild the gate cares
// about. The session rides in a signed cookie with a hard size cap, so the
// full list (Discord allows up to 200 guilds) must never be stored
func MembershipOf(guilds []discord.Guild, guildID string) []string {
	for _, g := range guilds {
		if g.ID == guildID {
			return []string{g.ID}
		}
	}
	return nil
}

// Ports is what the auth module exposes to other modules
type Ports struct {
	// Gate is the middleware protecting member-only routes
	Gate func(http.Handler) http.Handler
}
