// internal/app/features/live/routes.go
package live

import (
	"github.com/dalemusser/jobhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the live channel (typically under "/ws"). Browsers cannot
// set headers on a websocket handshake, so the token may also arrive as
// ?token=.
func Routes(h *Handler, mw *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.WithQueryToken().RequireSignedIn)

	r.Get("/", h.ServeWS)
	r.Get("/status", h.ServeStatus)
	return r
}
