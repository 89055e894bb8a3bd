// internal/app/features/seekers/entries.go
package seekers

import (
	"context"
	"net/http"

	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/dalemusser/jobhub/internal/app/system/timeouts"
	"github.com/dalemusser/jobhub/internal/domain/models"
)

// HandleAddEducation handles POST /education.
func (h *Handler) HandleAddEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	var e models.Education
	if err := apierr.Decode(r, &e); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if e.Qualification == "" {
		apierr.Write(w, h.Log, apierr.Invalid("qualification is required"))
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	saved, err := h.Seekers.AddEducation(ctx, userID, e)
	if err != nil {
		apierr.Write(w, h.Log, storeErr(err, "Education"))
		return
	}
	apierr.WriteJSON(w, http.StatusCreated, map[string]any{"message": "Education added", "education": saved})
}

// HandleUpdateEducation handles PUT /education/{id}.
func (h *Handler) HandleUpdateEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := entryID(r, "id")
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	var e models.Education
	if err := apierr.Decode(r, &e); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	saved, err := h.Seekers.UpdateEducation(ctx, userID, id, e)
	if err != nil {
		apierr.Write(w, h.Log, storeErr(err, "Education"))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{"message": "Education updated", "education": saved})
}

// HandleDeleteEducation handles DELETE /education/{id}.
func (h *Handler) HandleDeleteEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := entryID(r, "id")
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Seekers.DeleteEducation(ctx, userID, id)
	if err != nil {
		apierr.Write(w, h.Log, storeErr(err, "Education"))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{"message": "Education entry deleted successfully", "profile": p})
}

// HandleAddEmployment handles POST /employment.
func (h *Handler) HandleAddEmployment(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	var e models.Employment
	if err := apierr.Decode(r, &e); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	saved, err := h.Seekers.AddEmployment(ctx, userID, e)
	if err != nil {
		apierr.Write(w, h.Log, storeErr(err, "Employment"))
		return
	}
	apierr.WriteJSON(w, http.StatusCreated, map[string]any{"message": "Employment added", "employment": saved})
}

// HandleUpdateEmployment handles PUT /employment/{id}.
func (h *Handler) HandleUpdateEmployment(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := entryID(r, "id")
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	var e models.Employment
	if err := apierr.Decode(r, &e); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	saved, err := h.Seekers.UpdateEmployment(ctx, userID, id, e)
	if err != nil {
		apierr.Write(w, h.Log, storeErr(err, "Employment"))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{"message": "Employment updated", "employment": saved})
}

// HandleDeleteEmployment handles DELETE /employment/{id}.
func (h *Handler) HandleDeleteEmployment(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := entryID(r, "id")
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Seekers.DeleteEmployment(ctx, userID, id)
	if err != nil {
		apierr.Write(w, h.Log, storeErr(err, "Employment"))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{"message": "Employment entry deleted successfully", "profile": p})
}
