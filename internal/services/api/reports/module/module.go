// Package module wires the report submission pipeline into the API
package module

import (
	"net/http"

	modkit "bukatsu/internal/modkit"
	"bukatsu/internal/modkit/httpkit"
	str "bukatsu/internal/platform/strings"

	reportshttp "bukatsu/internal/services/api/reports/http"
	"bukatsu/internal/services/api/reports/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// New constructs the reports module. The gate middleware arrives via
// modkit.WithMiddlewares from the API wiring
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("reports"),
		modkit.WithPrefix("/reports"),
	}, opts...)...)

	svc := service.New(service.Config{
		ChannelID:      deps.Cfg.MustString("DISCORD_CHANNEL_ID"),
		PreviewTimeout: deps.Cfg.MayDuration("FXTWITTER_TIMEOUT", 0),
	}, deps.Discord, deps.Previews)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		reportshttp.Register(r, reportshttp.Deps{Svc: svc})
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
func (m *Module) Name() string { return str.MustString(m.name, "reports") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares implements the modkit.Module interface
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
