// Package domain holds the identity and authorization types for the access gate
package domain

import (
	"context"
	"time"

	"bukatsu/internal/platform/session"

	"github.com/gorilla/sessions"
)

// Identity is the authenticated Discord user as captured at OAuth callback
// time. Tokens never leave the session, and GuildIDs carries only the
// configured guild (see MembershipOf) to keep the cookie under the
// securecookie size cap
type Identity struct {
	ID            string   `json:"id"`
	Username      string   `json:"username"`
	Discriminator string   `json:"discriminator"`
	GlobalName    string   `json:"global_name,omitempty"`
	Avatar        string   `json:"avatar,omitempty"`
	GuildIDs      []string `json:"-"`
	AccessToken   string   `json:"-"`
	RefreshToken  string   `json:"-"`
}

// DisplayName prefers the global name over the login name
func (i Identity) DisplayName() string {
	if i.GlobalName != "" {
		return i.GlobalName
	}
	return i.Username
}

// MemberInfo is the guild-scoped view of a user
type MemberInfo struct {
	Nick  string
	Roles []string
}

// Reason classifies why the gate said no
type Reason string

// Gate refusal reasons, echoed verbatim to clients
const (
	ReasonNotAuthenticated  Reason = "NOT_AUTHENTICATED"
	ReasonNotInGuild        Reason = "NOT_IN_GUILD"
	ReasonMemberFetchFailed Reason = "MEMBER_FETCH_FAILED"
	ReasonNoRequiredRole    Reason = "NO_REQUIRED_ROLE"
)

// Decision is one gate evaluation, cached in the session
type Decision struct {
	Authorized bool
	Reason     Reason
	Member     MemberInfo
	CheckedAt  time.Time
}

// session value keys
const (
	keyIdentity   = "identity"
	keyDecision   = "decision"
	keyOAuthState = "oauth_state"
)

func init() {
	session.Register(Identity{}, Decision{})
}

// IdentityFromSession reads the stored identity, false when not logged in
func IdentityFromSession(s *sessions.Session) (Identity, bool) {
	v, ok := s.Values[keyIdentity].(Identity)
	return v, ok
}

// StoreIdentity writes the identity into the session
func StoreIdentity(s *sessions.Session, id Identity) { s.Values[keyIdentity] = id }

// DecisionFromSession reads the cached gate decision, false when absent
func DecisionFromSession(s *sessions.Session) (Decision, bool) {
	v, ok := s.Values[keyDecision].(Decision)
	return v, ok
}

// StoreDecision caches a gate decision in the session
func StoreDecision(s *sessions.Session, d Decision) { s.Values[keyDecision] = d }

// ClearDecision drops the cached decision, e.g. on logout
func ClearDecision(s *sessions.Session) { delete(s.Values, keyDecision) }

// OAuthStateFromSession reads and removes the pending OAuth state nonce
func OAuthStateFromSession(s *sessions.Session) (string, bool) {
	v, ok := s.Values[keyOAuthState].(string)
	delete(s.Values, keyOAuthState)
	return v, ok
}

// StoreOAuthState parks the OAuth state nonce for the callback to verify
func StoreOAuthState(s *sessions.Session, state string) { s.Values[keyOAuthState] = state }

// request context plumbing for gated handlers

type ctxKey uint8

const (
	keyCtxIdentity ctxKey = iota
	keyCtxMember
)

// WithIdentity stashes the identity on the request context
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, keyCtxIdentity, id)
}

// IdentityFrom returns the identity placed by the gate middleware
func IdentityFrom(ctx context.Context) (Identity, bool) {
	v, ok := ctx.Value(keyCtxIdentity).(Identity)
	return v, ok
}

// WithMember stashes the member info on the request context
func WithMember(ctx context.Context, m MemberInfo) context.Context {
	return context.WithValue(ctx, keyCtxMember, m)
}

// MemberFrom returns the member info placed by the gate middleware
func MemberFrom(ctx context.Context) (MemberInfo, bool) {
	v, ok := ctx.Value(keyCtxMember).(MemberInfo)
	return v, ok
}
