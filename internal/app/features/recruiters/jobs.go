// internal/app/features/recruiters/jobs.go
package recruiters

import (
	"context"
	"net/http"

	recruiterstore "github.com/dalemusser/jobhub/internal/app/store/recruiters"
	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/dalemusser/jobhub/internal/app/system/auditlog"
	"github.com/dalemusser/jobhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/jobhub/internal/app/system/inputval"
	"github.com/dalemusser/jobhub/internal/app/system/timeouts"
	"github.com/dalemusser/jobhub/internal/domain/models"
)

type jobRequest struct {
	JobTitle       string   `json:"jobTitle" validate:"required"`
	CompanyName    string   `json:"companyName"`
	CompanyLogo    string   `json:"companyLogo"`
	Salary         string   `json:"salary"`
	Experience     string   `json:"experience"`
	Location       string   `json:"location"`
	Description    string   `json:"description"`
	JobType        string   `json:"jobType" validate:"jobtype"`
	Remote         bool     `json:"remote"`
	Skills         []string `json:"skills"`
	RecruiterEmail string   `json:"recruiterEmail" validate:"omitempty,email"`
	Openings       int      `json:"openings" validate:"gte=0"`
}

// HandleCreateJob handles POST /jobs.
func (h *Handler) HandleCreateJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	var req jobRequest
	if err := apierr.Decode(r, &req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if err := inputval.Struct(req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	j, err := h.Recruiters.AddJob(ctx, userID, models.JobPost{
		JobTitle:       htmlsanitize.PlainText(req.JobTitle),
		CompanyName:    req.CompanyName,
		CompanyLogo:    req.CompanyLogo,
		Salary:         req.Salary,
		Experience:     req.Experience,
		Location:       req.Location,
		Description:    htmlsanitize.Sanitize(req.Description),
		JobType:        req.JobType,
		Remote:         req.Remote,
		Skills:         req.Skills,
		RecruiterEmail: req.RecruiterEmail,
		Openings:       req.Openings,
	})
	if err != nil {
		apierr.Write(w, h.Log, storeErr(err))
		return
	}
	h.Audit.JobPosted(ctx, auditlog.FromRequest(r), userID, j.ID, j.JobTitle)

	apierr.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Job posted successfully",
		"job":     j,
	})
}

// ServeMyJobs handles GET /my-jobs.
func (h *Handler) ServeMyJobs(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Recruiters.ByUserID(ctx, userID)
	if err != nil {
		apierr.Write(w, h.Log, storeErr(err))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{"jobs": p.JobPosts})
}

// jobUpdateRequest changes only the fields present in the body. Revision,
// when sent, must match the profile revision the client last read.
type jobUpdateRequest struct {
	JobTitle       *string  `json:"jobTitle" validate:"omitempty,min=1"`
	CompanyName    *string  `json:"companyName"`
	CompanyLogo    *string  `json:"companyLogo"`
	Salary         *string  `json:"salary"`
	Experience     *string  `json:"experience"`
	Location       *string  `json:"location"`
	Description    *string  `json:"description"`
	JobType        *string  `json:"jobType" validate:"omitempty,jobtype"`
	Remote         *bool    `json:"remote"`
	Skills         []string `json:"skills"`
	RecruiterEmail *string  `json:"recruiterEmail" validate:"omitempty,email"`
	Openings       *int     `json:"openings" validate:"omitempty,gte=0"`
	Revision       *int64   `json:"revision"`
}

func (req jobUpdateRequest) update() recruiterstore.JobUpdate {
	u := recruiterstore.JobUpdate{
		CompanyName:    req.CompanyName,
		CompanyLogo:    req.CompanyLogo,
		Salary:         req.Salary,
		Experience:     req.Experience,
		Location:       req.Location,
		JobType:        req.JobType,
		Remote:         req.Remote,
		Skills:         req.Skills,
		RecruiterEmail: req.RecruiterEmail,
		Openings:       req.Openings,
	}
	if req.JobTitle != nil {
		t := htmlsanitize.PlainText(*req.JobTitle)
		u.JobTitle = &t
	}
	if req.Description != nil {
		d := htmlsanitize.Sanitize(*req.Description)
		u.Description = &d
	}
	return u
}

// HandleUpdateJob handles PUT /jobs/{jobID}.
func (h *Handler) HandleUpdateJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	jobID, err := pathID(r, "jobID", "Invalid job id")
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	var req jobUpdateRequest
	if err := apierr.Decode(r, &req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if err := inputval.Struct(req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	j, err := h.Recruiters.UpdateJob(ctx, userID, jobID, req.update(), req.Revision)
	if err != nil {
		apierr.Write(w, h.Log, storeErr(err))
		return
	}
	h.Audit.JobUpdated(ctx, auditlog.FromRequest(r), userID, jobID)

	apierr.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Job updated successfully",
		"job":     j,
	})
}

// HandleDeleteJob handles DELETE /jobs/{jobID}. The post's applicants go with it.
func (h *Handler) HandleDeleteJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	jobID, err := pathID(r, "jobID", "Invalid job id")
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Recruiters.DeleteJob(ctx, userID, jobID); err != nil {
		apierr.Write(w, h.Log, storeErr(err))
		return
	}
	h.Audit.JobDeleted(ctx, auditlog.FromRequest(r), userID, jobID)

	apierr.WriteJSON(w, http.StatusOK, map[string]string{"message": "Job post deleted successfully"})
}
