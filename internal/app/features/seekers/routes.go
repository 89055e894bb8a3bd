// internal/app/features/seekers/routes.go
package seekers

import (
	"github.com/dalemusser/jobhub/internal/app/system/auth"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the job seeker endpoints (typically under "/api/users").
//
// Profile sections are limited to job seekers; settings and the seeker
// listing are open to any signed-in user, and the email check is public.
func Routes(h *Handler, mw *auth.Middleware) chi.Router {
	r := chi.NewRouter()

	r.Get("/check-email-verified/{userID}", h.ServeEmailVerified)

	r.Group(func(pr chi.Router) {
		pr.Use(mw.RequireSignedIn)

		pr.Get("/settings", h.ServeSettings)
		pr.Get("/all", h.ServeAll)

		pr.Group(func(sr chi.Router) {
			sr.Use(auth.RequireRole(models.RoleJobSeeker))

			sr.Get("/me", h.ServeMe)
			sr.Get("/details", h.ServeDetails)
			sr.Get("/basic-details", h.ServeBasicDetails)

			sr.Put("/basic", h.HandleBasic)
			sr.Put("/professional", h.HandleProfessional)
			sr.Put("/personal", h.HandlePersonal)
			sr.Put("/skills", h.HandleSkills)
			sr.Put("/roles", h.HandleRoles)

			sr.Post("/education", h.HandleAddEducation)
			sr.Put("/education/{id}", h.HandleUpdateEducation)
			sr.Delete("/education/{id}", h.HandleDeleteEducation)

			sr.Post("/employment", h.HandleAddEmployment)
			sr.Put("/employment/{id}", h.HandleUpdateEmployment)
			sr.Delete("/employment/{id}", h.HandleDeleteEmployment)
		})
	})

	return r
}
