// Package http provides the Discord OAuth2 flow and session endpoints
package http

import (
	"crypto/rand"
	"encoding/hex"
	stdhttp "net/http"

	"golang.org/x/oauth2"

	perr "bukatsu/internal/platform/errors"
	"bukatsu/internal/platform/logger"
	phttp "bukatsu/internal/platform/net/http"
	psession "bukatsu/internal/platform/session"

	"bukatsu/internal/modkit/httpkit"
	"bukatsu/internal/services/api/auth/domain"
	"bukatsu/internal/services/api/auth/service"
)

// Deps are the handler dependencies
type Deps struct {
	Gate        *service.Gate
	Sessions    *psession.Manager
	Discord     domain.DirectoryReader
	OAuth       *oauth2.Config
	FrontendURL string
	GuildID     string
}

type handlers struct {
	deps Deps
	log  logger.Logger
}

// Register mounts the auth routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d, log: *logger.Named("auth")}

	r.Get("/discord", h.begin)
	r.Get("/discord/callback", h.callback)
	r.Get("/status", h.status)
	httpkit.Get(r, "/failed", h.failed)
	r.Post("/logout", h.logout)

	// member-only views
	httpkit.Protected(r, d.Gate.Require(), func(pr httpkit.Router) {
		httpkit.Get(pr, "/user", h.user)
		httpkit.Get(pr, "/guilds", h.guilds)
	})
}

// SafeUser is the identity echo with secrets stripped
// swagger:model
type SafeUser struct {
	ID            string `json:"id"            example:"80351110224678912"`
	Username      string `json:"username"      example:"alice"`
	Discriminator string `json:"discriminator" example:"0"`
	GlobalName    string `json:"global_name,omitempty" example:"Alice"`
	Avatar        string `json:"avatar,omitempty"      example:"8342729096ea3675442027381ff50dfe"`
}

func safeUser(id domain.Identity) SafeUser {
	return SafeUser{
		ID:            id.ID,
		Username:      id.Username,
		Discriminator: id.Discriminator,
		GlobalName:    id.GlobalName,
		Avatar:        id.Avatar,
	}
}

// StatusResponse reports the session's authentication and gate state
type StatusResponse struct {
	Authenticated bool      `json:"authenticated"`
	Authorized    bool      `json:"authorized,omitempty"`
	Error         string    `json:"error,omitempty" example:"NOT_IN_GUILD"`
	User          *SafeUser `json:"user,omitempty"`
}

// swagger:route GET /auth/discord Auth authBegin
// @Summary Redirect to the Discord consent screen
// @Tags Auth
// @Success 307
// @Router /auth/discord [get]
func (h *handlers) begin(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		phttp.RespondError(w, r, perr.Internalf("state generation failed"))
		return
	}
	state := hex.EncodeToString(buf)

	sess := h.deps.Sessions.Load(r)
	domain.StoreOAuthState(sess, state)
	if err := h.deps.Sessions.Save(w, r, sess); err != nil {
		phttp.RespondError(w, r, perr.Internalf("session save failed"))
		return
	}

	stdhttp.Redirect(w, r, h.deps.OAuth.AuthCodeURL(state), stdhttp.StatusTemporaryRedirect)
}

// swagger:route GET /auth/discord/callback Auth authCallback
// @Summary OAuth2 callback, establishes the session
// @Tags Auth
// @Success 302
// @Failure 401 {object} httpkit.Envelope
// @Router /auth/discord/callback [get]
func (h *handlers) callback(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	sess := h.deps.Sessions.Load(r)

	wantState, ok := domain.OAuthStateFromSession(sess)
	if !ok || wantState == "" || r.URL.Query().Get("state") != wantState {
		h.log.Warn().Msg("oauth state mismatch")
		phttp.RespondError(w, r, perr.Unauthorizedf("Authentication failed"))
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		phttp.RespondError(w, r, perr.Unauthorizedf("Authentication failed"))
		return
	}

	tok, err := h.deps.OAuth.Exchange(r.Context(), code)
	if err != nil {
		h.log.Warn().Err(err).Msg("oauth exchange failed")
		phttp.RespondError(w, r, perr.Unauthorizedf("Authentication failed"))
		return
	}

	user, err := h.deps.Discord.Identity(r.Context(), tok.AccessToken)
	if err != nil {
		h.log.Warn().Err(err).Msg("identity fetch failed")
		phttp.RespondError(w, r, perr.Unauthorizedf("Authentication failed"))
		return
	}
	guilds, err := h.deps.Discord.UserGuilds(r.Context(), tok.AccessToken)
	if err != nil {
		h.log.Warn().Err(err).Msg("guild list fetch failed")
		phttp.RespondError(w, r, perr.Unauthorizedf("Authentication failed"))
		return
	}
	domain.StoreIdentity(sess, domain.Identity{
		ID:            user.ID,
		Username:      user.Username,
		Discriminator: user.Discriminator,
		GlobalName:    user.GlobalName,
		Avatar:        user.Avatar,
		GuildIDs:      domain.MembershipOf(guilds, h.deps.GuildID),
		AccessToken:   tok.AccessToken,
		RefreshToken:  tok.RefreshToken,
	})
	// a fresh login invalidates any cached gate decision
	domain.ClearDecision(sess)

	if err := h.deps.Sessions.Save(w, r, sess); err != nil {
		h.log.Error().Err(err).Msg("session save failed")
		phttp.RespondError(w, r, perr.Internalf("session save failed"))
		return
	}

	h.log.Info().Str("user_id", user.ID).Msg("login complete")
	stdhttp.Redirect(w, r, h.deps.FrontendURL+"/auth/callback", stdhttp.StatusFound)
}

// swagger:route GET /auth/status Auth authStatus
// @Summary Session and gate status, never fails
// @Tags Auth
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /auth/status [get]
func (h *handlers) status(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	sess := h.deps.Sessions.Load(r)

	ident, ok := domain.IdentityFromSession(sess)
	if !ok {
		phttp.RespondOK(w, r, StatusResponse{Authenticated: false})
		return
	}

	d := h.deps.Gate.Evaluate(r.Context(), sess)
	if err := h.deps.Sessions.Save(w, r, sess); err != nil {
		h.log.Error().Err(err).Msg("session save failed")
	}

	u := safeUser(ident)
	phttp.RespondOK(w, r, StatusResponse{
		Authenticated: true,
		Authorized:    d.Authorized,
		Error:         string(d.Reason),
		User:          &u,
	})
}

// swagger:route GET /auth/failed Auth authFailed
// @Summary OAuth failure landing
// @Tags Auth
// @Failure 401 {object} httpkit.Envelope
// @Router /auth/failed [get]
func (h *handlers) failed(_ *stdhttp.Request) (any, error) {
	return nil, perr.Unauthorizedf("Authentication failed")
}

// swagger:route POST /auth/logout Auth authLogout
// @Summary Destroy the session
// @Tags Auth
// @Produce json
// @Success 200 {object} httpkit.Envelope
// @Router /auth/logout [post]
func (h *handlers) logout(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if err := h.deps.Sessions.Destroy(w, r); err != nil {
		phttp.RespondError(w, r, perr.Internalf("Logout failed"))
		return
	}
	phttp.RespondOK(w, r, map[string]string{"message": "Logged out successfully"})
}

// swagger:route GET /auth/user Auth authUser
// @Summary Identity echo for the gated session
// @Tags Auth
// @Produce json
// @Success 200 {object} SafeUser
// @Router /auth/user [get]
func (h *handlers) user(r *stdhttp.Request) (any, error) {
	ident, ok := domain.IdentityFrom(r.Context())
	if !ok {
		return nil, perr.Unauthorizedf("%s", domain.ReasonNotAuthenticated)
	}
	return safeUser(ident), nil
}

// GuildResponse is the allowed guild when the bot is installed there
type GuildResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// swagger:route GET /auth/guilds Auth authGuilds
// @Summary The allowed guild, present when the bot is installed
// @Tags Auth
// @Produce json
// @Success 200 {array} GuildResponse
// @Router /auth/guilds [get]
func (h *handlers) guilds(r *stdhttp.Request) (any, error) {
	guilds, err := h.deps.Discord.BotGuilds(r.Context())
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "bot guild list failed")
	}
	out := make([]GuildResponse, 0, 1)
	for _, g := range guilds {
		if g.ID == h.deps.GuildID {
			out = append(out, GuildResponse{ID: g.ID, Name: g.Name})
		}
	}
	return out, nil
}
