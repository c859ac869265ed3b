// Package api provides the HTTP API for the application
package api

import (
	"bukatsu/internal/adapters/discord"
	"bukatsu/internal/adapters/fxtwitter"
	"bukatsu/internal/platform/config"
	"bukatsu/internal/platform/logger"
	phttp "bukatsu/internal/platform/net/http"
	"bukatsu/internal/platform/net/middleware"
	"bukatsu/internal/platform/session"

	"bukatsu/internal/modkit"
	"bukatsu/internal/modkit/httpkit"
	"bukatsu/internal/modkit/module"
	"bukatsu/internal/modkit/swaggerkit"

	activitiesmod "bukatsu/internal/services/api/activities/module"
	authdomain "bukatsu/internal/services/api/auth/domain"
	authmod "bukatsu/internal/services/api/auth/module"
	metamod "bukatsu/internal/services/api/meta/module"
	reportsmod "bukatsu/internal/services/api/reports/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	cfg := opt.Config

	// shared deps for modules
	deps := modkit.Deps{
		Cfg:      cfg,
		Sessions: session.FromConfig(cfg),
		Discord: discord.NewClient(discord.Options{
			BotToken: cfg.MustString("DISCORD_BOT_TOKEN"),
			BaseURL:  cfg.MayString("DISCORD_API_BASE_URL", ""),
		}),
		Previews: fxtwitter.NewClient(fxtwitter.Options{
			BaseURL: cfg.MayString("FXTWITTER_BASE_URL", ""),
			Timeout: cfg.MayDuration("FXTWITTER_TIMEOUT", 0),
		}),
	}

	// Construct the auth module first and extract its gate port; the member
	// facing modules mount behind it
	auth := authmod.New(deps)
	gate := module.MustPortsOf[authdomain.Ports](auth).Gate

	mods := []module.Module{
		metamod.New(deps),
		auth,
		activitiesmod.New(deps, modkit.WithMiddlewares(gate)),
		reportsmod.New(deps, modkit.WithMiddlewares(gate)),
	}

	cors := middleware.CORSOptions{
		AllowedOrigins:   []string{cfg.MayString("FRONTEND_URL", "http://localhost:5173")},
		AllowCredentials: true,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(cors), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
