// internal/app/features/jobs/applications.go
package jobs

import (
	"context"
	"errors"
	"net/http"
	"strings"

	accountstore "github.com/dalemusser/jobhub/internal/app/store/accounts"
	recruiterstore "github.com/dalemusser/jobhub/internal/app/store/recruiters"
	seekerstore "github.com/dalemusser/jobhub/internal/app/store/seekers"
	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/dalemusser/jobhub/internal/app/system/auditlog"
	"github.com/dalemusser/jobhub/internal/app/system/notify"
	"github.com/dalemusser/jobhub/internal/app/system/timeouts"
	"github.com/dalemusser/jobhub/internal/domain/models"
)

type applyRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Resume       string `json:"resume"`
	Address      string `json:"address"`
	ProfileImage string `json:"profileImage"`
}

// HandleApply handles POST /{jobID}/apply. The applicant is always the
// caller; body fields override what their profile holds. Name, email,
// resume, and address must all be known.
func (h *Handler) HandleApply(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := jobID(r)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	var req applyRequest
	if err := apierr.Decode(r, &req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a := models.Applicant{
		UserID:       userID,
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Resume:       strings.TrimSpace(req.Resume),
		Address:      strings.TrimSpace(req.Address),
		ProfileImage: strings.TrimSpace(req.ProfileImage),
	}
	if err := h.fillFromProfile(ctx, &a); err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Server error", err))
		return
	}
	if a.Name == "" || a.Email == "" || a.Resume == "" || a.Address == "" {
		apierr.Write(w, h.Log, apierr.Invalid("Update your profile"))
		return
	}

	if _, err := h.Recruiters.Apply(ctx, id, a); err != nil {
		switch {
		case errors.Is(err, recruiterstore.ErrJobNotFound):
			apierr.Write(w, h.Log, apierr.NotFound("Job not found"))
		case errors.Is(err, recruiterstore.ErrAlreadyApplied):
			apierr.Write(w, h.Log, apierr.Conflict("Already applied"))
		default:
			apierr.Write(w, h.Log, apierr.Internal("Server error", err))
		}
		return
	}
	h.Audit.JobApplied(ctx, auditlog.FromRequest(r), userID, id)

	apierr.WriteJSON(w, http.StatusOK, map[string]string{"message": "Application submitted successfully"})
}

// fillFromProfile completes a's empty fields from the seeker profile and
// account. A missing profile leaves them empty.
func (h *Handler) fillFromProfile(ctx context.Context, a *models.Applicant) error {
	p, err := h.Seekers.ByUserID(ctx, a.UserID)
	switch {
	case errors.Is(err, seekerstore.ErrNotFound):
	case err != nil:
		return err
	default:
		a.Name = notify.FirstNonEmpty(a.Name, p.FullName)
		a.Resume = notify.FirstNonEmpty(a.Resume, p.Resume)
		a.Address = notify.FirstNonEmpty(a.Address, p.PersonalDetails.Address)
		a.ProfileImage = notify.FirstNonEmpty(a.ProfileImage, p.ProfileImage)
	}
	a.ProfileImage = notify.FirstNonEmpty(a.ProfileImage, models.DefaultSeekerImage)

	if a.Email != "" {
		return nil
	}
	acct, err := h.Accounts.ByID(ctx, a.UserID)
	if errors.Is(err, accountstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	a.Email = acct.Email
	return nil
}

// ServeIsApplied handles GET /{jobID}/is-applied.
func (h *Handler) ServeIsApplied(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := jobID(r)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	applied, err := h.Recruiters.HasApplied(ctx, id, userID)
	if errors.Is(err, recruiterstore.ErrJobNotFound) {
		apierr.Write(w, h.Log, apierr.NotFound("Job not found"))
		return
	}
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Server error", err))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]bool{"applied": applied})
}

// ServeApplied handles GET /applied: the caller's applied jobs with
// company placeholders filled in.
func (h *Handler) ServeApplied(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	jobs, err := h.Recruiters.AppliedJobs(ctx, userID)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Server error", err))
		return
	}
	for i := range jobs {
		jobs[i].CompanyName = notify.FirstNonEmpty(jobs[i].CompanyName, models.CompanyNotProvided)
		jobs[i].CompanyLogo = notify.FirstNonEmpty(jobs[i].CompanyLogo, models.DefaultCompanyLogo)
	}
	apierr.WriteJSON(w, http.StatusOK, jobs)
}

// ServeAppliedCount handles GET /applied/count.
func (h *Handler) ServeAppliedCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Recruiters.CountApplications(ctx, userID)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Server error", err))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]int64{"count": n})
}
