// internal/app/features/jobs/listing.go
package jobs

import (
	"context"
	"net/http"

	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/dalemusser/jobhub/internal/app/system/jobmatch"
	"github.com/dalemusser/jobhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
)

// LatestLimit is how many posts GET /latest returns.
const LatestLimit = 10

// ServeSearch handles GET /: every post matching the query filters.
// search matches title or company as a substring; location, experience,
// jobType, salary, and company must match exactly.
func (h *Handler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	f := jobmatch.SearchFilter{
		Search:     query.Get(r, "search"),
		Location:   query.Get(r, "location"),
		Experience: query.Get(r, "experience"),
		JobType:    query.Get(r, "jobType"),
		Salary:     query.Get(r, "salary"),
		Company:    query.Get(r, "company"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	all, err := h.postings(ctx)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Server error", err))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, listings(jobmatch.Search(all, f)))
}

// HandleDesignationSearch handles POST /search.
func (h *Handler) HandleDesignationSearch(w http.ResponseWriter, r *http.Request) {
	var q jobmatch.DesignationQuery
	if err := apierr.Decode(r, &q); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	all, err := h.postings(ctx)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Server error", err))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, posts(jobmatch.SearchDesignation(all, q)))
}

// ServeLatest handles GET /latest.
func (h *Handler) ServeLatest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	all, err := h.postings(ctx)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Failed to fetch latest jobs", err))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, posts(jobmatch.Latest(all, LatestLimit)))
}

// ServeCount handles GET /count: the number of job posts.
func (h *Handler) ServeCount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	t, err := h.Recruiters.Totals(ctx)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Failed to fetch total job count", err))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]int64{"total": t.JobPosts})
}

// HandleRecommended handles POST /recommended.
func (h *Handler) HandleRecommended(w http.ResponseWriter, r *http.Request) {
	var c jobmatch.Criteria
	if err := apierr.Decode(r, &c); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	all, err := h.postings(ctx)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Failed to fetch recommended jobs", err))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, posts(jobmatch.Recommend(all, c)))
}
