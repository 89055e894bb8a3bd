// internal/app/features/activity/recent.go
package activity

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/dalemusser/jobhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type entry struct {
	ID        primitive.ObjectID `json:"_id"`
	Role      string             `json:"role"`
	UserName  string             `json:"userName"`
	Action    string             `json:"action"`
	Details   *string            `json:"details"`
	Timestamp time.Time          `json:"timestamp"`
}

// ServeRecent handles GET /: the newest registrations as a feed.
func (h *Handler) ServeRecent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	accts, err := h.Accounts.Recent(ctx, RecentLimit)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Failed to fetch activity logs", err))
		return
	}
	out := make([]entry, 0, len(accts))
	for _, a := range accts {
		out = append(out, entry{
			ID:        a.ID,
			Role:      a.Role,
			UserName:  a.Email,
			Action:    "Registered",
			Timestamp: a.CreatedAt,
		})
	}
	apierr.WriteJSON(w, http.StatusOK, out)
}
