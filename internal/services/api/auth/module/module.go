// Package module wires the Discord OAuth flow and access gate into the API
package module

import (
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	modkit "bukatsu/internal/modkit"
	"bukatsu/internal/modkit/httpkit"
	str "bukatsu/internal/platform/strings"

	"bukatsu/internal/services/api/auth/domain"
	authhttp "bukatsu/internal/services/api/auth/http"
	"bukatsu/internal/services/api/auth/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	ports  domain.Ports

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// New constructs the auth module from DISCORD_* / AUTH_* config
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("auth"),
		modkit.WithPrefix("/auth"),
	}, opts...)...)

	cfg := deps.Cfg
	guildID := cfg.MustString("DISCORD_GUILD_ID")

	gate := service.NewGate(service.Config{
		GuildID:  guildID,
		RoleIDs:  cfg.MayCSV("DISCORD_ALLOWED_ROLE_IDS", nil),
		CacheTTL: cfg.MayDuration("AUTH_CACHE_TTL", 0),
	}, deps.Discord, deps.Sessions)

	oauth := &oauth2.Config{
		ClientID:     cfg.MustString("DISCORD_CLIENT_ID"),
		ClientSecret: cfg.MustString("DISCORD_CLIENT_SECRET"),
		RedirectURL:  cfg.MustString("DISCORD_CALLBACK_URL"),
		Scopes:       []string{"identify", "guilds"},
		Endpoint:     endpoints.Discord,
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		ports:     domain.Ports{Gate: gate.Require()},
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		authhttp.Register(r, authhttp.Deps{
			Gate:        gate,
			Sessions:    deps.Sessions,
			Discord:     deps.Discord,
			OAuth:       oauth,
			FrontendURL: cfg.MayString("FRONTEND_URL", "http://localhost:5173"),
			GuildID:     guildID,
		})
		if external != nil {
			external(r)
		}
	}

	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "auth") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares implements the modkit.Module interface
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports exposes the gate middleware to sibling modules
func (m *Module) Ports() any { return m.ports }
