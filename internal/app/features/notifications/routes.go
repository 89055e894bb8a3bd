// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/dalemusser/jobhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the notification endpoints (typically under "/api/notifications").
func Routes(h *Handler, mw *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.RequireSignedIn)

	r.Post("/", h.HandleCreate)
	r.Delete("/", h.HandleDeleteAll)

	r.Get("/user/{userID}", h.ServeList)
	r.Get("/user/{userID}/unread-count", h.ServeUnreadCount)
	r.Put("/user/{userID}/read-all", h.HandleMarkAllRead)

	r.Put("/{id}/read", h.HandleMarkRead)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
