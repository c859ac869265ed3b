// Package service implements the access gate: guild membership plus role
// checks with a short-lived per-session decision cache
package service

import (
	"context"
	"net/http"
	"slices"
	"time"

	perr "bukatsu/internal/platform/errors"
	"bukatsu/internal/platform/logger"
	pnet "bukatsu/internal/platform/net"
	phttp "bukatsu/internal/platform/net/http"
	psession "bukatsu/internal/platform/session"

	"bukatsu/internal/services/api/auth/domain"

	"github.com/gorilla/sessions"
)

// Config carries the gate's allow-list
type Config struct {
	// GuildID is the one community this deployment serves
	GuildID string
	// RoleIDs is the role allow-list; membership in any one suffices
	RoleIDs []string
	// CacheTTL bounds how long a gate decision is trusted
	CacheTTL time.Duration
}

// Gate evaluates and caches authorization decisions
type Gate struct {
	cfg      Config
	members  domain.MemberFetcher
	sessions *psession.Manager
	log      logger.Logger
	now      func() time.Time
}

// NewGate builds the gate service
func NewGate(cfg Config, members domain.MemberFetcher, sm *psession.Manager) *Gate {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &Gate{
		cfg:      cfg,
		members:  members,
		sessions: sm,
		log:      *logger.Named("gate"),
		now:      time.Now,
	}
}

// Evaluate returns the gate decision for the session, consulting the cached
// decision first. Both grants and refusals are cached so a flapping Discord
// API cannot be probed through us
func (g *Gate) Evaluate(ctx context.Context, sess *sessions.Session) domain.Decision {
	ident, ok := domain.IdentityFromSession(sess)
	if !ok {
		return domain.Decision{Reason: domain.ReasonNotAuthenticated}
	}

	if d, ok := domain.DecisionFromSession(sess); ok && g.now().Sub(d.CheckedAt) < g.cfg.CacheTTL {
		return d
	}

	d := g.check(ctx, ident)
	d.CheckedAt = g.now()
	domain.StoreDecision(sess, d)
	return d
}

// check runs the full membership verification against Discord
func (g *Gate) check(ctx context.Context, ident domain.Identity) domain.Decision {
	if !slices.Contains(ident.GuildIDs, g.cfg.GuildID) {
		return domain.Decision{Reason: domain.ReasonNotInGuild}
	}

	member, err := g.members.GuildMember(ctx, g.cfg.GuildID, ident.ID)
	if err != nil {
		g.log.Warn().Err(err).Str("user_id", ident.ID).Msg("member lookup failed, gate closed")
		return domain.Decision{Reason: domain.ReasonMemberFetchFailed}
	}

	hasRole := slices.ContainsFunc(member.Roles, func(r string) bool {
		return slices.Contains(g.cfg.RoleIDs, r)
	})
	if !hasRole {
		return domain.Decision{Reason: domain.ReasonNoRequiredRole}
	}

	return domain.Decision{
		Authorized: true,
		Member:     domain.MemberInfo{Nick: member.Nick, Roles: member.Roles},
	}
}

// Require is the middleware form of the gate. Unauthenticated requests get a
// 401, refused ones a 403 with the reason as the error string, and granted
// ones continue with identity and member info on the context
func (g *Gate) Require() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := g.sessions.Load(r)
			d := g.Evaluate(r.Context(), sess)

			if d.Reason == domain.ReasonNotAuthenticated {
				status, body := pnet.Error(perr.Unauthorizedf("%s", d.Reason), pnet.RequestID(r.Context()))
				phttp.JSON(w, status, body)
				return
			}

			// persist the (possibly refreshed) cached decision either way
			if err := g.sessions.Save(w, r, sess); err != nil {
				g.log.Error().Err(err).Msg("session save failed")
			}

			if !d.Authorized {
				status, body := pnet.Error(perr.Forbiddenf("%s", d.Reason), pnet.RequestID(r.Context()))
				phttp.JSON(w, status, body)
				return
			}

			ident, _ := domain.IdentityFromSession(sess)
			ctx := pnet.WithUser(r.Context(), ident.ID)
			ctx = pnet.WithMemberNick(ctx, d.Member.Nick)
			ctx = domain.WithIdentity(ctx, ident)
			ctx = domain.WithMember(ctx, d.Member)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
