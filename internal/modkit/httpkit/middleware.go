package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"bukatsu/internal/platform/net/middleware"
)

// Middleware is the standard net/http middleware shape
type Middleware = func(http.Handler) http.Handler

// CommonStack returns a baseline per module middleware slice
// compose with the access gate middleware as needed in main
func CommonStack(cors middleware.CORSOptions) []Middleware {
	return []Middleware{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 2 * time.Second}),

		// cross-origin (the SPA sends the session cookie, so credentials matter)
		middleware.CORS(cors),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}
