// internal/app/features/recruiters/routes.go
package recruiters

import (
	"github.com/dalemusser/jobhub/internal/app/system/auth"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the recruiter endpoints (typically under "/api/recruiters").
// Every route needs a signed-in user; listings and the email check are open
// to any role, the rest to recruiters only.
func Routes(h *Handler, mw *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.RequireSignedIn)

	r.Get("/all-with-openings", h.ServeAllWithOpenings)
	r.Get("/summary", h.ServeSummary)
	r.Get("/check-email-verified/{userID}", h.ServeEmailVerified)

	r.Group(func(rr chi.Router) {
		rr.Use(auth.RequireRole(models.RoleRecruiter))

		rr.Get("/profile", h.ServeProfile)
		rr.Put("/profile", h.HandleUpdateProfile)

		rr.Post("/jobs", h.HandleCreateJob)
		rr.Get("/my-jobs", h.ServeMyJobs)
		rr.Put("/jobs/{jobID}", h.HandleUpdateJob)
		rr.Delete("/jobs/{jobID}", h.HandleDeleteJob)

		rr.Get("/jobs/{jobID}/applicants", h.ServeJobApplicants)
		rr.Put("/jobs/{jobID}/applicants/{applicantID}/status", h.HandleApplicantStatus)
		rr.Get("/applicants/{userID}", h.ServeApplicant)
	})

	return r
}
