// internal/app/features/verify/routes.go
package verify

import (
	"github.com/dalemusser/jobhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the verification endpoints (typically under "/api/verify").
func Routes(h *Handler, mw *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Post("/send-email-otp", h.HandleSend)

	r.Group(func(pr chi.Router) {
		pr.Use(mw.RequireSignedIn)
		pr.Post("/verify-email-otp", h.HandleVerify)
	})
	return r
}
