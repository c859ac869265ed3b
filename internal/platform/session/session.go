// Package session wraps gorilla/sessions behind a small manager so handlers
// never touch the store directly
package session

import (
	"encoding/gob"
	"net/http"
	"time"

	"bukatsu/internal/platform/config"
	"bukatsu/internal/platform/logger"

	"github.com/gorilla/sessions"
)

// Register makes custom value types gob-encodable for cookie storage.
// Call from an init in the package that owns the type
func Register(values ...any) {
	for _, v := range values {
		gob.Register(v)
	}
}

// Manager owns the cookie store and the session name
type Manager struct {
	store *sessions.CookieStore
	name  string
	log   logger.Logger
}

// Options configures the Manager
type Options struct {
	Secret string
	Name   string
	MaxAge int // seconds
	Secure bool
}

// New builds a Manager with sane defaults
func New(o Options) *Manager {
	if o.Name == "" {
		o.Name = "bukatsu_session"
	}
	if o.MaxAge <= 0 {
		o.MaxAge = 7 * 24 * 60 * 60
	}
	st := sessions.NewCookieStore([]byte(o.Secret))
	st.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   o.MaxAge,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: st, name: o.Name, log: *logger.Named("session")}
}

// FromConfig builds a Manager from the service config scope
// SESSION_SECRET is required; the rest default
func FromConfig(cfg config.Conf) *Manager {
	return New(Options{
		Secret: cfg.MustString("SESSION_SECRET"),
		Name:   cfg.MayString("SESSION_NAME", "bukatsu_session"),
		MaxAge: int(cfg.MayDuration("SESSION_TTL", 7*24*time.Hour).Seconds()),
		Secure: cfg.MayBool("SECURE_COOKIES", false),
	})
}

// Load returns the session for the request. Decode failures (rotated secret,
// tampered cookie) fall back to a fresh session rather than failing the request
func (m *Manager) Load(r *http.Request) *sessions.Session {
	s, err := m.store.Get(r, m.name)
	if err != nil {
		m.log.Warn().Err(err).Msg("session decode failed, starting fresh")
	}
	return s
}

// Save persists the session onto the response
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, s *sessions.Session) error {
	return m.store.Save(r, w, s)
}

// Destroy expires the session cookie
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	s := m.Load(r)
	s.Options.MaxAge = -1
	for k := range s.Values {
		delete(s.Values, k)
	}
	return m.store.Save(r, w, s)
}
