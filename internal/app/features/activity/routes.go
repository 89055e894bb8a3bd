// internal/app/features/activity/routes.go
package activity

import (
	"github.com/dalemusser/jobhub/internal/app/system/auth"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the admin activity endpoints (typically under "/api/activities").
func Routes(h *Handler, mw *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.RequireSignedIn)
	r.Use(auth.RequireRole(models.RoleAdmin))

	r.Get("/", h.ServeRecent)
	r.Get("/summary", h.ServeSummary)

	return r
}
