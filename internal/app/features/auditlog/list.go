// internal/app/features/auditlog/list.go
package auditlog

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/jobhub/internal/app/store/audit"
	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/dalemusser/jobhub/internal/app/system/paging"
	"github.com/dalemusser/jobhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dateLayout = "2006-01-02"

type listResponse struct {
	Events  []audit.Event `json:"events"`
	Total   int64         `json:"total"`
	Start   int           `json:"start"`
	Limit   int           `json:"limit"`
	HasNext bool          `json:"hasNext"`
}

// parseFilter reads category, event_type, user_id, start_date, and
// end_date (YYYY-MM-DD, inclusive) from the query string.
func parseFilter(r *http.Request) (audit.QueryFilter, error) {
	f := audit.QueryFilter{
		Category:  query.Get(r, "category"),
		EventType: query.Get(r, "event_type"),
	}
	if s := query.Get(r, "user_id"); s != "" {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return f, apierr.Invalid("Invalid user_id")
		}
		f.UserID = &id
	}
	if s := query.Get(r, "start_date"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return f, apierr.Invalid("start_date must be YYYY-MM-DD")
		}
		f.StartTime = &t
	}
	if s := query.Get(r, "end_date"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return f, apierr.Invalid("end_date must be YYYY-MM-DD")
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		f.EndTime = &end
	}
	return f, nil
}

// ServeList handles GET /: matching events, newest first, paged with
// ?start= and ?limit=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	page := paging.Parse(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	total, err := h.Events.CountByFilter(ctx, f)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Server error", err))
		return
	}
	f.Offset = page.Offset()
	f.Limit = page.LimitPlusOne()
	events, err := h.Events.Query(ctx, f)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Server error", err))
		return
	}
	hasNext := paging.Trim(&events, page)

	apierr.WriteJSON(w, http.StatusOK, listResponse{
		Events:  events,
		Total:   total,
		Start:   page.Start,
		Limit:   page.Size,
		HasNext: hasNext,
	})
}
