// internal/app/features/recruiters/applicants.go
package recruiters

import (
	"context"
	"errors"
	"net/http"

	accountstore "github.com/dalemusser/jobhub/internal/app/store/accounts"
	seekerstore "github.com/dalemusser/jobhub/internal/app/store/seekers"
	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/dalemusser/jobhub/internal/app/system/appstatus"
	"github.com/dalemusser/jobhub/internal/app/system/auditlog"
	"github.com/dalemusser/jobhub/internal/app/system/notify"
	"github.com/dalemusser/jobhub/internal/app/system/timeouts"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"go.uber.org/zap"
)

// ServeJobApplicants handles GET /jobs/{jobID}/applicants.
func (h *Handler) ServeJobApplicants(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	jobID, err := pathID(r, "jobID", "Invalid job id")
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Recruiters.ByUserID(ctx, userID)
	if err != nil {
		apierr.Write(w, h.Log, storeErr(err))
		return
	}
	j, ok := p.JobPost(jobID)
	if !ok {
		apierr.Write(w, h.Log, apierr.NotFound("Job not found in recruiter profile"))
		return
	}
	applicants := j.Applicants
	if applicants == nil {
		applicants = []models.Applicant{}
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{"applicants": applicants})
}

type statusRequest struct {
	Status      string `json:"status"`
	CompanyName string `json:"companyName"`
	CompanyLogo string `json:"companyLogo"`
}

// HandleApplicantStatus handles PUT /jobs/{jobID}/applicants/{applicantID}/status.
//
// The store moves the applicant out of "applied" in a single conditional
// write; only then is the applicant notified.
func (h *Handler) HandleApplicantStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if err := apierr.Decode(r, &req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	status, err := appstatus.ParseDecision(req.Status)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid(`Invalid status. Must be "shortlist", "maybe", or "reject".`))
		return
	}
	jobID, err := pathID(r, "jobID", "Invalid job id")
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	applicantID, err := pathID(r, "applicantID", "Invalid applicant id")
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Recruiters.SetApplicantStatus(ctx, userID, jobID, applicantID, status)
	if err != nil {
		apierr.Write(w, h.Log, storeErr(err))
		return
	}
	j, _ := p.JobPost(jobID)
	a, _ := j.Applicant(applicantID)

	h.Audit.ApplicantStatusChanged(ctx, auditlog.FromRequest(r), userID, applicantID, jobID, string(status))

	if _, err := h.Notify.ApplicationStatus(ctx, notify.StatusChange{
		ApplicantID: applicantID,
		JobID:       jobID,
		JobTitle:    j.JobTitle,
		Status:      string(status),
		CompanyName: notify.FirstNonEmpty(req.CompanyName, p.CompanyName),
		CompanyLogo: notify.FirstNonEmpty(req.CompanyLogo, p.CompanyLogo),
	}); err != nil {
		h.Log.Error("applicant status notification failed",
			zap.String("applicant_id", applicantID.Hex()),
			zap.String("job_id", jobID.Hex()),
			zap.Error(err))
		apierr.Write(w, h.Log, apierr.Internal("Server error", err))
		return
	}

	apierr.WriteJSON(w, http.StatusOK, map[string]any{
		"message":          "Applicant " + string(status) + " successfully",
		"updatedApplicant": a,
	})
}

// applicantProfile is a seeker profile with the account email attached.
type applicantProfile struct {
	*models.JobSeekerProfile
	Email string `json:"email"`
}

// ServeApplicant handles GET /applicants/{userID}.
func (h *Handler) ServeApplicant(w http.ResponseWriter, r *http.Request) {
	applicantID, err := pathID(r, "userID", "Invalid applicant id")
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Seekers.ByUserID(ctx, applicantID)
	if errors.Is(err, seekerstore.ErrNotFound) {
		apierr.Write(w, h.Log, apierr.NotFound("Applicant profile not found"))
		return
	}
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Server error", err))
		return
	}
	acct, err := h.Accounts.ByID(ctx, applicantID)
	if errors.Is(err, accountstore.ErrNotFound) {
		apierr.Write(w, h.Log, apierr.NotFound("Applicant auth record not found"))
		return
	}
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Server error", err))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{
		"applicant": applicantProfile{JobSeekerProfile: p, Email: acct.Email},
	})
}
