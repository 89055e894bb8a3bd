// internal/app/features/account/routes.go
package account

import (
	"github.com/dalemusser/jobhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the account endpoints (typically under "/api/auth").
func Routes(h *Handler, mw *auth.Middleware) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)

	r.Route("/forgot-password", func(fr chi.Router) {
		fr.Post("/send-otp", h.HandleSendResetCode)
		fr.Post("/verify-otp", h.HandleVerifyResetCode)
		fr.Post("/reset", h.HandleResetPassword)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(mw.RequireSignedIn)
		pr.Post("/change-password", h.HandleChangePassword)
	})

	return r
}
