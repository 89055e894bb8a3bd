// internal/app/features/jobs/saved.go
package jobs

import (
	"context"
	"errors"
	"net/http"

	recruiterstore "github.com/dalemusser/jobhub/internal/app/store/recruiters"
	seekerstore "github.com/dalemusser/jobhub/internal/app/store/seekers"
	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/dalemusser/jobhub/internal/app/system/jobmatch"
	"github.com/dalemusser/jobhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func savedErr(err error) error {
	if errors.Is(err, seekerstore.ErrNotFound) {
		return apierr.NotFound("User not found")
	}
	return apierr.Internal("Server error", err)
}

type saveRequest struct {
	JobID string `json:"jobId"`
}

// HandleSave handles POST /saved. Saving twice is a no-op.
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	var req saveRequest
	if err := apierr.Decode(r, &req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	id, err := primitive.ObjectIDFromHex(req.JobID)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("Invalid job id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Recruiters.ByJobID(ctx, id); err != nil {
		if errors.Is(err, recruiterstore.ErrJobNotFound) {
			apierr.Write(w, h.Log, apierr.NotFound("Job not found"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal("Server error", err))
		return
	}
	saved, err := h.Seekers.SaveJob(ctx, userID, id)
	if err != nil {
		apierr.Write(w, h.Log, savedErr(err))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{
		"message":   "Job saved successfully",
		"savedJobs": saved,
	})
}

// HandleUnsave handles DELETE /saved/{jobID}.
func (h *Handler) HandleUnsave(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := jobID(r)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	saved, err := h.Seekers.UnsaveJob(ctx, userID, id)
	if err != nil {
		apierr.Write(w, h.Log, savedErr(err))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{
		"message":          "Job unsaved successfully",
		"updatedSavedJobs": saved,
	})
}

// ServeSaved handles GET /saved: the caller's saved job ids.
func (h *Handler) ServeSaved(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	saved, err := h.Seekers.SavedJobs(ctx, userID)
	if err != nil {
		apierr.Write(w, h.Log, savedErr(err))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, saved)
}

// ServeSavedDetails handles GET /saved/details: the saved posts that still
// exist, in listing order. A caller without a profile gets an empty list.
func (h *Handler) ServeSavedDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	saved, err := h.Seekers.SavedJobs(ctx, userID)
	if errors.Is(err, seekerstore.ErrNotFound) {
		saved = nil
	} else if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Server error", err))
		return
	}

	profiles, err := h.Recruiters.WithJobs(ctx, saved)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Server error", err))
		return
	}
	want := make(map[primitive.ObjectID]bool, len(saved))
	for _, id := range saved {
		want[id] = true
	}
	found := jobmatch.Filter(jobmatch.Flatten(profiles), func(p *jobmatch.Posting) bool {
		return want[p.ID]
	}, 0)
	apierr.WriteJSON(w, http.StatusOK, posts(found))
}
