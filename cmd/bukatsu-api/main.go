// @title         Bukatsu API
// @version       0.1.0
// @description   Discord club activity reports: OAuth login, member gate, report submission

package main

import (
	"context"

	"bukatsu/internal/platform/config"
	"bukatsu/internal/platform/logger"
	phttp "bukatsu/internal/platform/net/http"

	"bukatsu/internal/services/api"
)

func main() {
	// server knobs live under BUKATSU_API_*, integration secrets (DISCORD_*,
	// FXTWITTER_*, SESSION_*) at the root
	root := config.New()
	apiCfg := root.Prefix("BUKATSU_API_")

	// bring up logging early
	l := logger.Get()

	// http server (reads BUKATSU_API_PORT / BUKATSU_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
