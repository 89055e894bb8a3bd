// internal/app/features/jobs/routes.go
package jobs

import (
	"github.com/dalemusser/jobhub/internal/app/system/auth"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the job endpoints (typically under "/api/jobs").
//
// Both searches are public. Applying and the saved-job set belong to job
// seekers; everything else needs any signed-in user.
func Routes(h *Handler, mw *auth.Middleware) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeSearch)
	r.Post("/search", h.HandleDesignationSearch)

	r.Group(func(pr chi.Router) {
		pr.Use(mw.RequireSignedIn)

		pr.Get("/latest", h.ServeLatest)
		pr.Get("/count", h.ServeCount)
		pr.Post("/recommended", h.HandleRecommended)
		pr.Get("/applied", h.ServeApplied)
		pr.Get("/applied/count", h.ServeAppliedCount)
		pr.Get("/{jobID}/is-applied", h.ServeIsApplied)

		pr.Group(func(sr chi.Router) {
			sr.Use(auth.RequireRole(models.RoleJobSeeker))

			sr.Post("/{jobID}/apply", h.HandleApply)
			sr.Post("/saved", h.HandleSave)
			sr.Get("/saved", h.ServeSaved)
			sr.Get("/saved/details", h.ServeSavedDetails)
			sr.Delete("/saved/{jobID}", h.HandleUnsave)
		})
	})

	return r
}
