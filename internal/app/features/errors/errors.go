// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"go.uber.org/zap"
)

// Handler answers requests that no feature router claims. Every API
// response, including these, is JSON of the form {"message": "..."}.
type Handler struct {
	Log *zap.Logger
}

// NewHandler constructs an errors Handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// NotFound is installed as the router's NotFound handler.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Log.Debug("route not found", zap.String("method", r.Method), zap.String("path", r.URL.Path))
	apierr.Message(w, http.StatusNotFound, "Route not found")
}

// MethodNotAllowed is installed as the router's MethodNotAllowed handler.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	apierr.Message(w, http.StatusMethodNotAllowed, "Method not allowed")
}
