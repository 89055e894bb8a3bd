// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/dalemusser/jobhub/internal/app/system/auth"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the audit query (typically under "/api/audit"). Admin only.
func Routes(h *Handler, mw *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.RequireSignedIn)
	r.Use(auth.RequireRole(models.RoleAdmin))

	r.Get("/", h.ServeList)

	return r
}
