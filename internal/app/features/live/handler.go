// internal/app/features/live/handler.go
package live

import (
	"net/http"

	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/dalemusser/jobhub/internal/app/system/auth"
	"github.com/dalemusser/jobhub/internal/app/system/realtime"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handler attaches signed-in clients to the notification hub.
type Handler struct {
	Hub      *realtime.Hub
	Upgrader websocket.Upgrader
	Log      *zap.Logger
}

// NewHandler builds the live-channel handler. allowedOrigins restricts
// browser origins; an empty list accepts any.
func NewHandler(hub *realtime.Hub, allowedOrigins []string, logger *zap.Logger) *Handler {
	return &Handler{
		Hub:      hub,
		Upgrader: realtime.Upgrader(allowedOrigins),
		Log:      logger,
	}
}

// ServeWS upgrades the connection and registers it under the caller's id.
// Frames have the shape {"event":"new_notification","data":{...}}.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	h.Log.Debug("ws connect", zap.String("user_id", u.ID))
	h.Hub.ServeWS(&h.Upgrader, w, r, u.ID)
}

// ServeStatus reports how many live connections the caller holds.
func (h *Handler) ServeStatus(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]int{"connections": h.Hub.Connected(u.ID)})
}
